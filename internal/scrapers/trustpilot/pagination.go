package trustpilot

import (
	"fmt"
	"strconv"
)

// numbered page buttons, the "next" control shares the name prefix
const selectPageButtons = "[name*='pagination-button-']:not([name*='pagination-button-next'])"

// detectPageCount reads the total amount of review pages off the pagination controls
// of a page. The last numbered button is the last page, no controls means there is
// only one page.
func detectPageCount(doc Element) (int, error) {
	buttons := doc.All(selectPageButtons)
	if len(buttons) == 0 {
		return 1, nil
	}

	label := buttons[len(buttons)-1].Text()
	count, err := strconv.Atoi(label)
	if err != nil {
		return 0, fmt.Errorf("%w: pagination label %q is not a page number", ErrParseDefect, label)
	}
	if count < 1 {
		return 0, fmt.Errorf("%w: pagination label %q is not a page number", ErrParseDefect, label)
	}
	return count, nil
}
