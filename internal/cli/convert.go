package cli

import (
	"fmt"
	"log"

	"task-tracker-api/internal/manager"

	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Copy a snapshot between storage backends",
	Example: `  tracker convert --from csv:tasks.csv --to sqlite:tasks.db
  tracker convert --from sqlite:tasks.db --to csv:export.csv`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("from", "", "Source as backend:path")
	convertCmd.Flags().String("to", "", "Destination as backend:path")
	_ = convertCmd.MarkFlagRequired("from")
	_ = convertCmd.MarkFlagRequired("to")
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	n, err := convert(from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Copied %d items from %s to %s\n", n, from, to)
	return nil
}

// convert loads the source snapshot, validates it by restoring it into a
// fresh store and writes the result to the destination.
func convert(from, to string) (int, error) {
	srcBackend, srcPath, err := parseTarget(from)
	if err != nil {
		return 0, err
	}
	dstBackend, dstPath, err := parseTarget(to)
	if err != nil {
		return 0, err
	}

	src, closeSrc, err := openStore(srcBackend, srcPath)
	defer closeSrc()
	if err != nil {
		return 0, err
	}
	snap, err := src.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load %s: %w", from, err)
	}

	m := manager.NewInMemoryTaskManager(nil)
	if err := m.Restore(snap); err != nil {
		return 0, fmt.Errorf("invalid snapshot in %s: %w", from, err)
	}

	dst, closeDst, err := openStore(dstBackend, dstPath)
	defer closeDst()
	if err != nil {
		return 0, err
	}
	out := m.Snapshot()
	if err := dst.Save(out); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", to, err)
	}
	log.Printf("converted %d tasks, %d epics, %d subtasks", len(out.Tasks), len(out.Epics), len(out.Subtasks))
	return out.Len(), nil
}
