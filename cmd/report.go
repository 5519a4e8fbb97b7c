package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
	"github.com/mcpify/mcpify-install/pkg/installer"
)

// Style definitions
var (
	// Color profile detection
	profile = colorprofile.Detect(os.Stdout, os.Environ())

	// Styles with adaptive colors based on terminal capabilities
	headerStyle = func() lipgloss.Style {
		if profile == colorprofile.TrueColor || profile == colorprofile.ANSI256 {
			return lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212"))
		}
		return lipgloss.NewStyle().Bold(true)
	}()

	warnStyle = func() lipgloss.Style {
		if profile == colorprofile.TrueColor || profile == colorprofile.ANSI256 {
			return lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("214"))
		}
		return lipgloss.NewStyle().Bold(true)
	}()

	hintStyle = func() lipgloss.Style {
		if profile == colorprofile.TrueColor || profile == colorprofile.ANSI256 {
			return lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))
		}
		return lipgloss.NewStyle().Faint(true)
	}()
)

// report prints the outcome of a run.
func report(w io.Writer, name string, res *installer.Result) {
	switch {
	case res.AlreadyInstalled:
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%s is already installed at %s", name, res.Path)))
		fmt.Fprintln(w, hintStyle.Render("Run with --force to reinstall."))
		return
	case res.DryRun:
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Dry run: would install %s %s to %s", name, res.Tag, res.Path)))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Installed %s %s to %s", name, res.Tag, res.Path)))
	if res.FellBack {
		fmt.Fprintln(w, hintStyle.Render("The default install directory was not writable; installed to the user-local directory instead."))
	}
	if !res.OnPath {
		dir := filepath.Dir(res.Path)
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("Warning: %s is not in your PATH.", dir)))
		fmt.Fprintln(w, hintStyle.Render(fmt.Sprintf("Add it to your shell profile:\n  export PATH=\"%s:$PATH\"", dir)))
	}
}
