package main

import (
	"fmt"
	"strconv"
	"strings"

	"dvdbackup/internal/layout"
)

// buildTitleSetSpecs turns --title-sets (a comma-separated list of title set
// numbers) and --vob-parts (a parallel comma-separated list of each title
// set's VOB part count) into layout.TitleSetSpecs. Reading a disc's actual
// IFO tables to learn title set sizes is outside this program's scope (the
// original tool delegates that to libdvdread, which nothing in this stack
// replaces), so every title set's IFO and menu VOB sizes come from the
// uniform --ifo-blocks/--menu-blocks flags and every part is expected to be
// layout.MaxVOBBlocks; nothing shrinks the final part to its true extent.
func buildTitleSetSpecs(titleSetsFlag, vobPartsFlag string, ifoBlocks, menuBlocks uint64) ([]layout.TitleSetSpec, error) {
	titleSetsFlag = strings.TrimSpace(titleSetsFlag)
	if titleSetsFlag == "" {
		return nil, nil
	}

	numberFields := strings.Split(titleSetsFlag, ",")
	partFields := strings.Split(strings.TrimSpace(vobPartsFlag), ",")
	if len(partFields) != len(numberFields) {
		return nil, fmt.Errorf("--vob-parts must list exactly one count per --title-sets entry (got %d title sets, %d part counts)", len(numberFields), len(partFields))
	}

	specs := make([]layout.TitleSetSpec, 0, len(numberFields))
	for i, field := range numberFields {
		number, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("--title-sets: invalid title set number %q: %w", field, err)
		}
		parts, err := strconv.Atoi(strings.TrimSpace(partFields[i]))
		if err != nil {
			return nil, fmt.Errorf("--vob-parts: invalid part count %q: %w", partFields[i], err)
		}
		specs = append(specs, layout.TitleSetSpec{
			Number:     number,
			VOBParts:   parts,
			IFOBlocks:  ifoBlocks,
			MenuBlocks: menuBlocks,
		})
	}
	return specs, nil
}
