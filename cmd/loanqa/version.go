package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sync"

	"github.com/spf13/cobra"
)

// Build metadata injected with -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildInfo describes the running binary.
type buildInfo struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
	Modified  bool
}

// currentBuild is read once: linker values first, then the module and VCS
// stamps recorded by the go command.
var currentBuild = sync.OnceValue(func() buildInfo {
	info := buildInfo{Version: "(devel)", Commit: "unknown", Date: "unknown", GoVersion: runtime.Version()}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = fromModuleInfo(info, bi)
	}
	if version != "" {
		info.Version = version
	}
	if commit != "" {
		info.Commit = commit
	}
	if date != "" {
		info.Date = date
	}
	return info
})

// fromModuleInfo fills base with the version and VCS settings of bi.
func fromModuleInfo(base buildInfo, bi *debug.BuildInfo) buildInfo {
	if v := bi.Main.Version; v != "" {
		base.Version = v
	}
	if bi.GoVersion != "" {
		base.GoVersion = bi.GoVersion
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			base.Commit = s.Value[:min(len(s.Value), 7)]
		case "vcs.time":
			base.Date = s.Value
		case "vcs.modified":
			base.Modified = s.Value == "true"
		}
	}
	return base
}

// getVersion returns the version reported by --version and stamped into JSON reports.
func getVersion() string {
	return currentBuild().Version
}

// write prints the multi-line version block.
func (b buildInfo) write(w io.Writer) {
	rev := b.Commit
	if b.Modified {
		rev += " (modified)"
	}
	fmt.Fprintf(w, "loanqa version %s\n", b.Version)
	fmt.Fprintf(w, "  commit: %s\n", rev)
	fmt.Fprintf(w, "  built:  %s\n", b.Date)
	fmt.Fprintf(w, "  go:     %s\n", b.GoVersion)
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, build date and Go toolchain of loanqa.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return err
			}
			info := currentBuild()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}
			info.write(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().Bool("short", false, "Print the version number only")

	return cmd
}
