package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/lox/pokernow/internal/alias"
	"github.com/lox/pokernow/internal/ingest"
	"github.com/lox/pokernow/internal/mapedit"
)

// MappingsCmd manages per-session player name mappings.
type MappingsCmd struct {
	List MappingsListCmd `cmd:"" help:"List mapped and unmapped player names for a log"`
	Edit MappingsEditCmd `cmd:"" help:"Interactively map player names for a log"`
}

// MappingsListCmd prints the mapping state for one session log.
type MappingsListCmd struct {
	Log string `arg:"" help:"Path to PokerNow session CSV"`
}

func (cmd *MappingsListCmd) Run(rc *runContext) error {
	records, err := ingest.ReadLog(cmd.Log)
	if err != nil {
		return err
	}
	store, err := alias.Open(rc.cfg.Output.MappingDir, cmd.Log)
	if err != nil {
		return err
	}

	names := alias.CollectNames(records)
	mapped := store.Mapped()

	raws := make([]string, 0, len(mapped))
	for raw := range mapped {
		raws = append(raws, raw)
	}
	sort.Strings(raws)

	fmt.Fprintf(os.Stdout, "mapping file: %s\n\n", store.Path())
	if len(raws) > 0 {
		fmt.Fprintln(os.Stdout, "mapped:")
		for _, raw := range raws {
			fmt.Fprintf(os.Stdout, "  %s -> %s\n", raw, mapped[raw])
		}
	}
	unmapped := store.Unmapped(names)
	if len(unmapped) > 0 {
		fmt.Fprintln(os.Stdout, "unmapped:")
		for _, name := range unmapped {
			fmt.Fprintf(os.Stdout, "  %s\n", name)
		}
	}
	return nil
}

// MappingsEditCmd launches the interactive mapping editor.
type MappingsEditCmd struct {
	Log string `arg:"" help:"Path to PokerNow session CSV"`
}

func (cmd *MappingsEditCmd) Run(rc *runContext) error {
	records, err := ingest.ReadLog(cmd.Log)
	if err != nil {
		return err
	}
	store, err := alias.Open(rc.cfg.Output.MappingDir, cmd.Log)
	if err != nil {
		return err
	}

	names := alias.CollectNames(records)
	saved, err := mapedit.Run(store, names)
	if err != nil {
		return err
	}
	if saved {
		rc.logger.Info().Str("file", store.Path()).Msg("mappings saved")
	} else {
		rc.logger.Info().Msg("no changes saved")
	}
	return nil
}
