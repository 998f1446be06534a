package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/frinky/devlog/internal/detail"
	"github.com/frinky/devlog/internal/nav"
	"github.com/frinky/devlog/internal/route"
)

var routeBack int

var routeCmd = &cobra.Command{
	Use:   "route <fragment>...",
	Short: "Dry-runs navigation against the loaded content",
	Long: `The route command replays a sequence of fragments through the site's
navigation controller with an in-memory history. The first fragment is
the page load; every following one is a click. With --back, that many
back-button presses are replayed afterwards. Each step prints the
visible section, the detail view when shown, and the history stack.`,
	Example: `  devlog route '#home' '#detail-game-bang-shoot' '#about' --back 2`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := loadStore()
		if err != nil {
			return err
		}
		return runRoute(cmd.OutOrStdout(), store, args, routeBack)
	},
}

func runRoute(w io.Writer, store nav.EntryFinder, fragments []string, back int) error {
	out := &textOutput{w: w}
	history := nav.NewMemoryHistory(fragments[0])
	ctrl := nav.New(store, out, detail.NewPresenter(out, nil, logger), history, nav.WithLogger(logger))

	fmt.Fprintf(w, "load %s\n", fragments[0])
	r := ctrl.Start(fragments[0])
	out.flush()
	printState(w, r, history)

	for _, f := range fragments[1:] {
		fmt.Fprintf(w, "open %s\n", f)
		r = ctrl.Navigate(route.Decode(f), true)
		out.flush()
		printState(w, r, history)
	}

	for i := 0; i < back; i++ {
		fmt.Fprintln(w, "back")
		if !history.Back() {
			fmt.Fprintln(w, "  at start of history")
			break
		}
		out.flush()
		printState(w, ctrl.Current(), history)
	}
	return nil
}

func printState(w io.Writer, r route.Route, h *nav.MemoryHistory) {
	frags := h.Fragments()
	for i, f := range frags {
		if i == h.Index() {
			frags[i] = "[" + f + "]"
		}
	}
	fmt.Fprintf(w, "  route:   %s\n", r)
	fmt.Fprintf(w, "  history: %s\n", strings.Join(frags, " "))
}

// textOutput renders sections and detail views as indented text lines.
type textOutput struct {
	w     io.Writer
	lines []string
}

func (t *textOutput) ShowSection(id string) {
	t.lines = append(t.lines, "  section: "+id)
}

func (t *textOutput) ShowView(v detail.View) {
	t.lines = append(t.lines, "  title:   "+v.Title)
	if v.Meta != "" {
		t.lines = append(t.lines, "  meta:    "+v.Meta)
	}
	for _, b := range v.Body {
		for _, l := range b.Lines {
			if b.Kind == detail.List {
				l = "- " + l
			}
			t.lines = append(t.lines, "  | "+l)
		}
	}
	if v.DownloadURL != "" {
		t.lines = append(t.lines, "  download: "+v.DownloadURL)
	}
}

func (t *textOutput) ShowHero(h detail.HeroState) {
	switch {
	case h.Image == "":
		t.lines = append(t.lines, "  hero:    placeholder")
	case h.Loading:
		t.lines = append(t.lines, "  hero:    loading "+h.Image)
	default:
		t.lines = append(t.lines, "  hero:    "+h.Image)
	}
}

func (t *textOutput) flush() {
	for _, l := range t.lines {
		fmt.Fprintln(t.w, l)
	}
	t.lines = t.lines[:0]
}

func init() {
	routeCmd.Flags().IntVar(&routeBack, "back", 0, "number of back navigations to replay after the last fragment")
	rootCmd.AddCommand(routeCmd)
}
