// Ideaboard - Project Idea Sharing Board
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ideaboard

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/tomtom215/ideaboard/internal/auth"
)

// NewHashPasswordCmd creates the hash-password subcommand. The password is
// read from stdin so it never appears in shell history or process lists.
func NewHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a password read from stdin",
		Long: `Read one line from stdin, check it against the password policy and
print its bcrypt hash. Useful for seeding users directly in the database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHashPassword(cmd, cost)
		},
	}
	cmd.Flags().IntVar(&cost, "cost", auth.DefaultBcryptCost, "bcrypt cost")
	return cmd
}

func runHashPassword(cmd *cobra.Command, cost int) error {
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return oops.Code("INPUT_MISSING").Errorf("expected a password on stdin")
	}
	password := strings.TrimRight(line, "\r\n")

	if err := auth.ValidatePassword(password); err != nil {
		return oops.Code(auth.PolicyCode(err)).Wrap(err)
	}

	hash, err := auth.NewBcryptHasher(auth.WithCost(cost)).Hash(password)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}
