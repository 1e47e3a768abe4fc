// Package tui implements a terminal inspector of a live canfilter table:
// four bordered section panels, a status line, and a command input
// accepting the same insert/update/delete/reset/mode verbs the API
// exposes. Grounded on the teacher's debugger TUI (tcell/tview).
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lpc17xx/canfilter/service"
)

// TUI is the terminal inspector bound to one service.Session.
type TUI struct {
	Session *service.Session
	App     *tview.Application

	MainLayout *tview.Flex

	StandardView      *tview.TextView
	StandardGroupView *tview.TextView
	ExtendedView      *tview.TextView
	ExtendedGroupView *tview.TextView
	StatusView        *tview.TextView
	CommandInput      *tview.InputField

	RefreshInterval time.Duration
	stop            chan struct{}
}

// NewTUI creates an inspector bound to session, refreshing every
// refreshInterval in addition to refreshing immediately after any
// command it executes itself.
func NewTUI(session *service.Session, refreshInterval time.Duration) *TUI {
	t := &TUI{
		Session:         session,
		App:             tview.NewApplication(),
		RefreshInterval: refreshInterval,
		stop:            make(chan struct{}),
	}

	t.initializeViews()
	t.buildLayout()
	t.RefreshAll()

	return t
}

func (t *TUI) initializeViews() {
	t.StandardView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.StandardView.SetBorder(true).SetTitle(" Standard ")

	t.StandardGroupView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.StandardGroupView.SetBorder(true).SetTitle(" Standard Group ")

	t.ExtendedView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.ExtendedView.SetBorder(true).SetTitle(" Extended ")

	t.ExtendedGroupView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.ExtendedGroupView.SetBorder(true).SetTitle(" Extended Group ")

	t.StatusView = tview.NewTextView().SetDynamicColors(true)
	t.StatusView.SetBorder(true).SetTitle(" Status ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	sections := tview.NewFlex().
		AddItem(t.StandardView, 0, 1, false).
		AddItem(t.StandardGroupView, 0, 1, false).
		AddItem(t.ExtendedView, 0, 1, false).
		AddItem(t.ExtendedGroupView, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(sections, 0, 4, false).
		AddItem(t.StatusView, 5, 0, false).
		AddItem(t.CommandInput, 3, 0, true)
}

// Run starts the application's event loop and its background refresh
// ticker. It blocks until the application is stopped.
func (t *TUI) Run() error {
	if t.RefreshInterval > 0 {
		go t.refreshLoop()
	}
	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandInput).Run()
}

// Stop ends the refresh loop and the application.
func (t *TUI) Stop() {
	close(t.stop)
	t.App.Stop()
}

func (t *TUI) refreshLoop() {
	ticker := time.NewTicker(t.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.App.QueueUpdateDraw(t.RefreshAll)
		case <-t.stop:
			return
		}
	}
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd == "" {
		return
	}
	result := Execute(t.Session, cmd)
	t.CommandInput.SetText("")
	t.StatusView.SetText(result)
	t.RefreshAll()
}

// RefreshAll redraws every panel from the session's current snapshot.
func (t *TUI) RefreshAll() {
	snap := t.Session.Snapshot()

	t.StandardView.SetText(renderStandard(snap))
	t.StandardGroupView.SetText(renderWords(snap, snap.Addresses.SFFGRPsa, uint32(snap.Counts.StandardGroup)))
	t.ExtendedView.SetText(renderWords(snap, snap.Addresses.EFFsa, uint32(snap.Counts.Extended)))
	t.ExtendedGroupView.SetText(renderGroupWords(snap, snap.Addresses.EFFGRPsa, uint32(snap.Counts.ExtendedGroup)))
	t.StatusView.SetText(renderStatus(snap))
}

func renderStandard(snap service.Snapshot) string {
	var b strings.Builder
	n := int(snap.Counts.Standard)
	for p := 0; p < n; p++ {
		word := snap.Words[p/2]
		var half uint32
		if p%2 == 0 {
			half = word >> 16
		} else {
			half = word & 0xFFFF
		}
		fmt.Fprintf(&b, "[%2d] 0x%04x\n", p, half)
	}
	return b.String()
}

func renderWords(snap service.Snapshot, sectionAddr, count uint32) string {
	var b strings.Builder
	base := int(sectionAddr / 4)
	for i := uint32(0); i < count; i++ {
		fmt.Fprintf(&b, "[%2d] 0x%08x\n", i, snap.Words[base+int(i)])
	}
	return b.String()
}

func renderGroupWords(snap service.Snapshot, sectionAddr, count uint32) string {
	var b strings.Builder
	base := int(sectionAddr / 4)
	for i := uint32(0); i < count; i++ {
		start := snap.Words[base+int(i)*2]
		end := snap.Words[base+int(i)*2+1]
		fmt.Fprintf(&b, "[%2d] 0x%08x - 0x%08x\n", i, start, end)
	}
	return b.String()
}

func renderStatus(snap service.Snapshot) string {
	return fmt.Sprintf(
		"mode=%s  std=%d stdGrp=%d ext=%d extGrp=%d\nSFFsa=0x%03x SFFGRPsa=0x%03x EFFsa=0x%03x EFFGRPsa=0x%03x ENDofTable=0x%03x",
		snap.Mode, snap.Counts.Standard, snap.Counts.StandardGroup, snap.Counts.Extended, snap.Counts.ExtendedGroup,
		snap.Addresses.SFFsa, snap.Addresses.SFFGRPsa, snap.Addresses.EFFsa, snap.Addresses.EFFGRPsa, snap.Addresses.ENDofTable,
	)
}
