package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gubarz/tutormd/internal/citation"
	"github.com/gubarz/tutormd/internal/clipboard"
	"github.com/gubarz/tutormd/internal/config"
	"github.com/gubarz/tutormd/internal/document"
	"github.com/gubarz/tutormd/internal/logging"
	"github.com/gubarz/tutormd/internal/parser"
	"github.com/gubarz/tutormd/internal/render"
	"github.com/gubarz/tutormd/internal/ui"
)

var version = "0.1.0"

// tracer traces with key 'tutormd.cli'.
func tracer() tracing.Trace {
	return tracing.Select(logging.CLI)
}

var rootCmd = &cobra.Command{
	Use:   "tutormd [file]",
	Short: "Render tutor chat messages",
	Long: `Parses a tutor or student chat message written in a small
markdown dialect and renders it for the terminal, as JSON, or
back to canonical markdown.

Reads from stdin when no file (or "-") is given.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runRender,
}

var inlineCmd = &cobra.Command{
	Use:   "inline <text>",
	Short: "Show the inline nodes of a span of text",
	Args:  cobra.ExactArgs(1),
	RunE:  runInline,
}

var codeCmd = &cobra.Command{
	Use:   "code [file]",
	Short: "List code blocks of a message, or copy one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCode,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(inlineCmd, codeCmd, configCmd)

	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: "+formatList())
	rootCmd.PersistentFlags().Bool("debug", false, "Log debug information to stderr")

	rootCmd.Flags().StringP("resources", "r", "", "Resource file (yaml, json or toml) appended after the message")
	rootCmd.Flags().IntP("width", "w", 0, "Wrap width")
	rootCmd.Flags().BoolP("pager", "p", false, "Open the interactive pager")
	rootCmd.Flags().Bool("json", false, "JSON output (shorthand for -o json)")
	rootCmd.Flags().Bool("plain", false, "Plain output (shorthand for -o plain)")
	rootCmd.Flags().BoolP("benchmark", "b", false, "Benchmark parsing and exit")

	codeCmd.Flags().IntP("copy", "c", 0, "Copy code block N (1-based) to the clipboard")

	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func formatList() string {
	names := make([]string, len(render.Formats))
	for i, f := range render.Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func fromStdin(args []string) bool {
	return len(args) == 0 || args[0] == "-"
}

// readInput reads the named file, or stdin for "" and "-"
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if fromStdin(args) {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading message: %w", err)
	}
	return string(data), nil
}

func applyDebug(cmd *cobra.Command) {
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logging.SetDebug(true)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	applyDebug(cmd)

	// Handle output mode flags
	if j, _ := cmd.Flags().GetBool("json"); j {
		config.SetOutput(string(render.FormatJSON))
	} else if p, _ := cmd.Flags().GetBool("plain"); p {
		config.SetOutput(string(render.FormatPlain))
	} else if o, _ := cmd.Flags().GetString("output"); o != "" {
		config.SetOutput(o)
	}
	if w, _ := cmd.Flags().GetInt("width"); w > 0 {
		config.SetWidth(w)
	}
	if p, _ := cmd.Flags().GetBool("pager"); p {
		config.SetPager(true)
	}

	resources, err := loadResources(cmd)
	if err != nil {
		return err
	}

	benchmark, _ := cmd.Flags().GetBool("benchmark")

	// A piped stdin is streamed into the pager instead of read up front
	if config.GetPager() && !benchmark && fromStdin(args) {
		tracer().Debugf("pager: streaming stdin")
		return ui.Run("", resources, cmd.InOrStdin())
	}

	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	if benchmark {
		return runBenchmark(cmd.OutOrStdout(), text)
	}

	if config.GetPager() {
		return ui.Run(text, resources, nil)
	}

	start := time.Now()
	doc := parser.Segment(text)
	tracer().Debugf("segmented %d bytes into %d blocks in %v", len(text), len(doc), time.Since(start))

	styles := render.DefaultStyles()
	styles.LoadFromConfig()
	return render.Render(cmd.OutOrStdout(), citation.Append(doc, resources), render.Options{
		Format:       render.Format(config.GetOutput()),
		Width:        config.GetWidth(),
		GlamourStyle: config.GetGlamourStyle(),
		JSONIndent:   config.GetJSONIndent(),
		Styles:       styles,
	})
}

func loadResources(cmd *cobra.Command) ([]citation.Resource, error) {
	path, _ := cmd.Flags().GetString("resources")
	if path == "" {
		path = config.GetResources()
	}
	if path == "" {
		return nil, nil
	}
	resources, err := citation.Load(path)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("loaded %d resources from %s", len(resources), path)
	return resources, nil
}

// runBenchmark times repeated segmentation, the way a streamed message
// is re-parsed on every chunk
func runBenchmark(w io.Writer, text string) error {
	const rounds = 1000

	start := time.Now()
	var doc document.Document
	for i := 0; i < rounds; i++ {
		doc = parser.Segment(text)
	}
	elapsed := time.Since(start)

	// Force GC and get memory stats
	runtime.GC()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Fprintf(w, "Segmented %d bytes into %d blocks, %v per pass\n", len(text), len(doc), elapsed/rounds)
	fmt.Fprintf(w, "Memory: Alloc=%dMB, TotalAlloc=%dMB, Sys=%dMB, HeapObjects=%d\n",
		m.Alloc/1024/1024, m.TotalAlloc/1024/1024, m.Sys/1024/1024, m.HeapObjects)
	return nil
}

func runInline(cmd *cobra.Command, args []string) error {
	applyDebug(cmd)
	nodes := parser.FormatInline(args[0])

	if o, _ := cmd.Flags().GetString("output"); o != "" {
		config.SetOutput(o)
	}
	if config.GetOutput() == string(render.FormatJSON) {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(nodes)
	}

	for _, n := range nodes {
		switch v := n.(type) {
		case document.Link:
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %q %q\n", v.Kind(), v.Label, v.URL)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%-6s %q\n", n.Kind(), document.PlainText([]document.Inline{n}))
		}
	}
	return nil
}

func runCode(cmd *cobra.Command, args []string) error {
	applyDebug(cmd)
	text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	snippets := clipboard.Snippets(parser.Segment(text))

	n, _ := cmd.Flags().GetInt("copy")
	if n == 0 {
		for i, s := range snippets {
			fmt.Fprintf(cmd.OutOrStdout(), "--- %d ---\n%s\n", i+1, s)
		}
		return nil
	}
	if n < 1 || n > len(snippets) {
		return fmt.Errorf("no code block %d (message has %d)", n, len(snippets))
	}
	if err := clipboard.NewSystem().Copy(snippets[n-1]); err != nil {
		return fmt.Errorf("copying code block %d: %w", n, err)
	}
	fmt.Fprintf(os.Stderr, "Copied code block %d\n", n)
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	if f := config.ConfigFile(); f != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", f)
	}
	for _, k := range config.Keys {
		v := config.Get(k)
		if s, ok := v.(string); ok {
			v = strconv.Quote(s)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", k, v)
	}
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
