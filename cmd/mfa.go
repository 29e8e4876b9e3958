package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"punch.cli/internal/api"
)

var mfaToken string

var mfaCmd = &cobra.Command{
	Use:   "mfa",
	Short: "Multi-factor authentication flows",
}

var mfaEmailCmd = &cobra.Command{
	Use:   "email",
	Short: "Verify with a code sent to your email address",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMFARequestFlow(cmd, api.MFAOptionEmail)
	},
}

var mfaMobileCmd = &cobra.Command{
	Use:   "mobile",
	Short: "Verify with a code sent to your phone (SMS)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMFARequestFlow(cmd, api.MFAOptionPhone)
	},
}

var mfaTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Verify with a token generator like Google Authenticator",
	Args:  cobra.NoArgs,
	RunE:  runMFAToken,
}

func init() {
	mfaTokenCmd.Flags().StringVar(&mfaToken, "token", "", "Code from the token generator (prompted when omitted)")
	mfaCmd.AddCommand(mfaEmailCmd)
	mfaCmd.AddCommand(mfaMobileCmd)
	mfaCmd.AddCommand(mfaTokenCmd)
}

func runMFARequestFlow(cmd *cobra.Command, option string) error {
	session, err := activeSession()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	info, err := session.RequestMFACode(ctx, option)
	if err != nil {
		return err
	}
	fmt.Println(info.Message)

	code, err := promptCode()
	if err != nil {
		return err
	}
	info, err = session.SubmitMFACode(ctx, option, code)
	if err != nil {
		return err
	}
	fmt.Println(info.Message)
	return nil
}

func runMFAToken(cmd *cobra.Command, args []string) error {
	session, err := activeSession()
	if err != nil {
		return err
	}

	code := mfaToken
	if code == "" {
		code, err = promptCode()
		if err != nil {
			return err
		}
	}

	info, err := session.SubmitMFACode(cmd.Context(), api.MFAOptionToken, code)
	if err != nil {
		return err
	}
	if info.Success {
		fmt.Println("Code valid")
	} else {
		fmt.Println("Code invalid")
	}
	return nil
}

func promptCode() (string, error) {
	fmt.Print("Enter the code: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading code: %w", err)
	}
	return strings.TrimSpace(line), nil
}
