package cmdhelp_test

import (
	"bytes"
	"testing"

	"github.com/edgehub-io/cli/pkg/cmdhelp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatArgs(t *testing.T) {
	args := []cmdhelp.Arg{
		{Name: "uuidOrDevice", Required: true},
		{Name: "service", Required: false},
		{Name: "internal", Required: true, Hidden: true},
	}
	assert.Equal(t, "<UUIDORDEVICE> [<SERVICE>]", cmdhelp.FormatArgs(args))
}

func TestFormatArgsPreservesOrder(t *testing.T) {
	args := []cmdhelp.Arg{
		{Name: "b", Required: false},
		{Name: "a", Required: true},
	}
	assert.Equal(t, "[<B>] <A>", cmdhelp.FormatArgs(args))
}

func TestFormatArgsEmpty(t *testing.T) {
	assert.Empty(t, cmdhelp.FormatArgs(nil))
	assert.Empty(t, cmdhelp.FormatArgs([]cmdhelp.Arg{{Name: "x", Hidden: true}}))
}

func TestLegacyUsage(t *testing.T) {
	assert.Equal(t, "env add <name> [value]", cmdhelp.LegacyUsage("env add NAME [VALUE]"))
	assert.Equal(t, "logs <uuidordevice>", cmdhelp.LegacyUsage("logs UUIDORDEVICE"))
	assert.Equal(t, "logs [<service>]", cmdhelp.LegacyUsage("logs [<SERVICE>]"))
	assert.Equal(t, "", cmdhelp.LegacyUsage(""))
}

func newTestRoot(out *bytes.Buffer, ran *string) *cobra.Command {
	root := &cobra.Command{Use: "edgehub", SilenceUsage: true}
	root.SetOut(out)
	root.SetErr(out)
	root.AddCommand(&cobra.Command{
		Use: "version",
		RunE: func(cmd *cobra.Command, args []string) error {
			*ran = "version"
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use: "logs",
		RunE: func(cmd *cobra.Command, args []string) error {
			*ran = "logs"
			return nil
		},
	})
	return root
}

func TestExecuteVersionTokens(t *testing.T) {
	for _, token := range []string{"version", "-v", "--version"} {
		var out bytes.Buffer
		var ran string
		root := newTestRoot(&out, &ran)
		require.NoError(t, cmdhelp.Execute(root, []string{token}))
		assert.Equal(t, "version", ran, "token %q", token)
	}
}

func TestExecuteDelegatesOtherCommands(t *testing.T) {
	var out bytes.Buffer
	var ran string
	root := newTestRoot(&out, &ran)
	require.NoError(t, cmdhelp.Execute(root, []string{"logs"}))
	assert.Equal(t, "logs", ran)
}
