package analyze

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lakshaymaurya-felt/dirclean/internal/core"
)

// maxShow caps the children printed per tree level.
const maxShow = 20

// PrintRanked prints the first limit entries of a ranking as a size | path
// table. limit <= 0 prints everything.
func PrintRanked(w io.Writer, ranked []Ranked, limit int) {
	fmt.Fprintln(w, "\nLargest directories:")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	fmt.Fprintf(w, "%10s | Path\n", "Size")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	for _, r := range ranked[:limit] {
		fmt.Fprintf(w, "%10s | %s\n", core.FormatSize(r.Size), r.Path)
	}
	if rest := len(ranked) - limit; rest > 0 {
		fmt.Fprintf(w, "%10s | ... and %s more\n", "", humanize.Comma(int64(rest)))
	}
}

// PrintStaticTree prints a plain-text tree view of the analysis. Respects
// depth (0 = unlimited) and minSize filters.
func PrintStaticTree(w io.Writer, root *DirEntry, maxDepth int, minSize int64) {
	if root == nil {
		fmt.Fprintln(w, "  No data to display.")
		return
	}

	fmt.Fprintf(w, "  Disk usage: %s\n", root.Path)
	fmt.Fprintf(w, "  Total size: %s\n", core.FormatSize(root.Size))
	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))
	fmt.Fprintln(w)

	printEntry(w, root, "", true, maxDepth, minSize)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+strings.Repeat("-", 58))
	fmt.Fprintf(w, "  Total: %s\n", core.FormatSize(root.Size))
}

// printEntry recursively prints a directory entry in tree format.
// Uses ASCII connectors (+-- \-- |) so every console renders it.
func printEntry(w io.Writer, entry *DirEntry, prefix string, isLast bool, maxDepth int, minSize int64) {
	if maxDepth > 0 && entry.Depth > maxDepth {
		return
	}
	if entry.Depth > 0 && minSize > 0 && entry.Size < minSize {
		return
	}

	connector := "+-- "
	childPrefix := "|   "
	if isLast {
		connector = "\\-- "
		childPrefix = "    "
	}
	if entry.Depth == 0 {
		connector = ""
		childPrefix = ""
	}

	line := fmt.Sprintf("  %s%s%s/  %s", prefix, connector, entry.Name, core.FormatSize(entry.Size))
	if entry.Parent != nil {
		line += fmt.Sprintf("  (%.1f%%)", entry.Percentage(entry.Parent.Size))
	}
	if entry.IsOld() {
		line += "  [old]"
	}
	fmt.Fprintln(w, line)

	// Children are already sorted largest first.
	var children []*DirEntry
	for _, c := range entry.Children {
		if minSize > 0 && c.Size < minSize {
			continue
		}
		if maxDepth > 0 && c.Depth > maxDepth {
			continue
		}
		children = append(children, c)
	}

	shown := children
	if len(shown) > maxShow {
		shown = shown[:maxShow]
	}
	for i, child := range shown {
		last := i == len(shown)-1 && len(children) <= maxShow
		printEntry(w, child, prefix+childPrefix, last, maxDepth, minSize)
	}
	if rest := len(children) - len(shown); rest > 0 {
		fmt.Fprintf(w, "  %s\\-- ... and %d more entries\n", prefix+childPrefix, rest)
	}
}

// PrintOpportunities prints each class with its count, total and top five
// entries.
func PrintOpportunities(w io.Writer, ops []Opportunity) {
	if len(ops) == 0 {
		fmt.Fprintln(w, "\nNo cleanup opportunities found.")
		return
	}
	for _, op := range ops {
		fmt.Fprintf(w, "\n%s - %d items, %s\n", op.Title, len(op.Items), core.FormatSize(op.Total))
		top := op.Items
		if len(top) > 5 {
			top = top[:5]
		}
		for _, it := range top {
			fmt.Fprintf(w, "  %10s | %s\n", core.FormatSize(it.Size), it.Path)
		}
		if len(op.Items) > 5 {
			fmt.Fprintf(w, "  ... and %d more\n", len(op.Items)-5)
		}
	}
}
