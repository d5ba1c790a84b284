// kbtool manages the NovaBot knowledge base CSV files.
//
// Usage:
//
//	kbtool [-dir path] validate                    check required fields, priorities, and quality bounds
//	kbtool [-dir path] analyze                     print content statistics
//	kbtool [-dir path] stats [output.json]         export statistics as JSON
//	kbtool [-dir path] dedupe                      remove duplicate questions, keeping the first occurrence
//	kbtool [-dir path] fix                         apply automatic fixes (defaults, tag cleanup, ASCII normalization)
//	kbtool [-dir path] search <query> [field]      find entries containing the query (field defaults to all)
//	kbtool [-dir path] merge <target> <source>...  combine source files into target, dropping duplicates
//
// -dir defaults to data/knowledge_base. validate exits non-zero when any
// entry has an error-level issue.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/novabot-ai/novabot/internal/knowledge"
	"github.com/novabot-ai/novabot/internal/logging"
)

const defaultDir = "data/knowledge_base"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := logging.NewLogger("kbtool")
	slog.SetDefault(logger)

	fs := flag.NewFlagSet("kbtool", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usage
	dir := fs.String("dir", defaultDir, "knowledge base directory")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	args = fs.Args()
	if len(args) == 0 {
		usage()
		return 1
	}

	files, err := knowledge.LoadDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load knowledge base: %v\n", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no CSV files found in %s\n", *dir)
		return 1
	}

	switch args[0] {
	case "validate":
		return validate(files)
	case "analyze":
		return analyze(files)
	case "stats":
		return stats(files, args[1:])
	case "dedupe":
		return dedupe(*dir, files)
	case "fix":
		return fix(*dir, files)
	case "search":
		return search(files, args[1:])
	case "merge":
		return merge(*dir, files, args[1:])
	default:
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: kbtool [-dir path] <command> [args]")
	fmt.Fprintln(os.Stderr, "commands: validate, analyze, stats [output.json], dedupe, fix,")
	fmt.Fprintln(os.Stderr, "          search <query> [field], merge <target> <source>...")
}

func validate(files map[string][]*knowledge.Entry) int {
	categories, err := knowledge.LoadCategories()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load categories: %v\n", err)
		return 1
	}

	var errorCount, warningCount int
	for _, file := range sortedNames(files) {
		for _, issue := range knowledge.ValidateEntries(file, files[file], categories) {
			fmt.Printf("%s: %s:%d - %s\n", issue.Severity, issue.Location.File, issue.Location.Row, issue.Message)
			if issue.Severity == knowledge.SeverityError {
				errorCount++
			} else {
				warningCount++
			}
		}
	}

	for question, locations := range knowledge.FindDuplicates(files) {
		fmt.Printf("error: duplicate question %q at", question)
		for _, loc := range locations {
			fmt.Printf(" %s:%d", loc.File, loc.Row)
		}
		fmt.Println()
		errorCount++
	}

	fmt.Printf("%d errors, %d warnings\n", errorCount, warningCount)
	if errorCount > 0 {
		return 1
	}
	return 0
}

func analyze(files map[string][]*knowledge.Entry) int {
	analysis := knowledge.Analyze(files)

	fmt.Printf("files: %d\n", analysis.TotalFiles)
	fmt.Printf("entries: %d\n", analysis.TotalEntries)
	fmt.Printf("avg question length: %d chars\n", analysis.AvgQuestionLength)
	fmt.Printf("avg answer length: %d chars\n", analysis.AvgAnswerLength)

	fmt.Println("categories:")
	for _, category := range sortedKeys(analysis.Categories) {
		fmt.Printf("  %s: %d\n", category, analysis.Categories[category])
	}

	fmt.Println("priorities:")
	for _, priority := range []knowledge.Priority{knowledge.PriorityHigh, knowledge.PriorityMedium, knowledge.PriorityLow} {
		fmt.Printf("  %s: %d\n", priority, analysis.Priorities[priority])
	}

	if top := analysis.TopTags(10); len(top) > 0 {
		fmt.Println("top tags:")
		for _, tag := range top {
			fmt.Printf("  %s: %d\n", tag, analysis.Tags[tag])
		}
	}

	if len(analysis.DuplicateQuestions) > 0 {
		fmt.Printf("duplicate questions: %d\n", len(analysis.DuplicateQuestions))
	}

	return 0
}

func stats(files map[string][]*knowledge.Entry, args []string) int {
	report := knowledge.NewReport(knowledge.Analyze(files))

	if len(args) == 0 {
		if err := report.WriteJSON(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			return 1
		}
		return 0
	}

	f, err := os.Create(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create %s: %v\n", args[0], err)
		return 1
	}
	defer f.Close()

	if err := report.WriteJSON(f); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write report to %s: %v\n", args[0], err)
		return 1
	}
	fmt.Printf("statistics exported to %s\n", args[0])
	return 0
}

func dedupe(dir string, files map[string][]*knowledge.Entry) int {
	removed := knowledge.Dedupe(files)
	if len(removed) == 0 {
		fmt.Println("no duplicates to remove")
		return 0
	}

	for _, file := range sortedNames(files) {
		if removed[file] == 0 {
			continue
		}
		if err := knowledge.SaveFile(filepath.Join(dir, file), files[file]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to rewrite %s: %v\n", file, err)
			return 1
		}
		fmt.Printf("%s: removed %d duplicate entries\n", file, removed[file])
	}

	return 0
}

func fix(dir string, files map[string][]*knowledge.Entry) int {
	fixed := knowledge.Repair(files)
	if len(fixed) == 0 {
		fmt.Println("no fixes needed")
		return 0
	}

	for _, file := range sortedNames(files) {
		if fixed[file] == 0 {
			continue
		}
		if err := knowledge.SaveFile(filepath.Join(dir, file), files[file]); err != nil {
			fmt.Fprintf(os.Stderr, "failed to rewrite %s: %v\n", file, err)
			return 1
		}
		fmt.Printf("%s: fixed %d entries\n", file, fixed[file])
	}

	return 0
}

func search(files map[string][]*knowledge.Entry, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: kbtool search <query> [field]")
		return 1
	}
	field := "all"
	if len(args) > 1 {
		field = args[1]
	}

	results, err := knowledge.Search(files, args[0], field)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	fmt.Printf("%d results\n", len(results))
	for _, result := range results {
		fmt.Printf("%s:%d\n", result.Location.File, result.Location.Row)
		fmt.Printf("  question: %s\n", truncate(result.Entry.Question, 100))
		fmt.Printf("  answer: %s\n", truncate(result.Entry.Answer, 150))
		fmt.Printf("  category: %s, priority: %s\n", result.Entry.Category, result.Entry.Priority)
	}

	return 0
}

func merge(dir string, files map[string][]*knowledge.Entry, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: kbtool merge <target> <source>...")
		return 1
	}
	target, sources := args[0], args[1:]

	sets := make([][]*knowledge.Entry, 0, len(sources))
	for _, source := range sources {
		entries, ok := files[source]
		if !ok {
			fmt.Fprintf(os.Stderr, "source file not found: %s\n", source)
			return 1
		}
		sets = append(sets, entries)
	}

	merged := knowledge.Merge(sets...)
	if err := knowledge.SaveFile(filepath.Join(dir, target), merged); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", target, err)
		return 1
	}
	fmt.Printf("merged %d entries into %s\n", len(merged), target)

	return 0
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func sortedNames(files map[string][]*knowledge.Entry) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
