package sheet

import (
	"fmt"
	"os"

	"github.com/collectiontools/stagehand/internal/common"
)

// ValidateHeadings compares a CSV's headings against a verified-headings
// file. Validation is permissive: extra headings are reported, never
// rejected, and the order of headings does not matter.
func ValidateHeadings(csvPath, verifiedPath string) ([]string, error) {
	if _, err := os.Stat(verifiedPath); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingHeadings, verifiedPath)
	}

	verified, err := ReadTable(verifiedPath)
	if err != nil {
		return nil, err
	}
	table, err := ReadTable(csvPath)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(verified.Headers))
	for _, heading := range verified.Headers {
		known[heading] = struct{}{}
	}

	var unmatched []string
	for _, heading := range table.Headers {
		if _, ok := known[heading]; !ok {
			unmatched = append(unmatched, heading)
		}
	}

	return unmatched, nil
}
