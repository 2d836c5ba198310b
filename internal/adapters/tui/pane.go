package tui

// pane is the view shown in the settings overlay. The set of views is
// closed: every implementation is listed below and switches over pane are
// exhaustive.
type pane interface {
	isPane()
}

// menuCursor is the selection and error line shared by the menu views.
type menuCursor struct {
	index int
	err   string
}

// digitEntry is the state of a digit-entry prompt.
type digitEntry struct {
	digits string
	err    string
}

type (
	paneMenu           struct{ menuCursor }
	paneControls       struct{ menuCursor }
	paneConfigInfo     struct{ menuCursor }
	paneCountdown      struct{ menuCursor }
	paneDeadline       struct{ menuCursor }
	paneCountdownInput struct{ digitEntry }
	paneDeadlineInput  struct{ digitEntry }
)

func (*paneMenu) isPane()           {}
func (*paneControls) isPane()       {}
func (*paneConfigInfo) isPane()     {}
func (*paneCountdown) isPane()      {}
func (*paneDeadline) isPane()       {}
func (*paneCountdownInput) isPane() {}
func (*paneDeadlineInput) isPane()  {}

// action is what selecting a menu item does.
type action int

const (
	actResume action = iota
	actCountdownMenu
	actDeadlineMenu
	actControls
	actConfigInfo
	actBack
	actEnterDuration
	actToggleCountdown
	actResetCountdown
	actClearCountdown
	actEnterDeadline
	actClearDeadline
)

type menuItem struct {
	label string
	act   action
}

var (
	mainMenu = []menuItem{
		{"Resume", actResume},
		{"Set/Manage Countdown Timer", actCountdownMenu},
		{"Set/Manage Deadline Timer", actDeadlineMenu},
		{"Controls", actControls},
		{"Config path info", actConfigInfo},
	}
	countdownMenu = []menuItem{
		{"Set duration (HH:MM:SS)", actEnterDuration},
		{"Start/Pause", actToggleCountdown},
		{"Reset to original duration", actResetCountdown},
		{"Clear timer", actClearCountdown},
		{"Back", actBack},
	}
	deadlineMenu = []menuItem{
		{"Set deadline (YYYY-MM-DD HH:MM)", actEnterDeadline},
		{"Clear timer", actClearDeadline},
		{"Back", actBack},
	}
	backMenu = []menuItem{
		{"Back", actBack},
	}
)

// menuOf returns the cursor and items of a menu view. ok is false for the
// digit-entry prompts.
func menuOf(p pane) (cur *menuCursor, items []menuItem, ok bool) {
	switch p := p.(type) {
	case *paneMenu:
		return &p.menuCursor, mainMenu, true
	case *paneControls:
		return &p.menuCursor, backMenu, true
	case *paneConfigInfo:
		return &p.menuCursor, backMenu, true
	case *paneCountdown:
		return &p.menuCursor, countdownMenu, true
	case *paneDeadline:
		return &p.menuCursor, deadlineMenu, true
	case *paneCountdownInput, *paneDeadlineInput:
		return nil, nil, false
	default:
		panic("unknown pane")
	}
}

// entryOf returns the prompt state and its properties for a digit-entry
// view. back is the view Esc returns to.
func entryOf(p pane) (e *digitEntry, size int, back pane, ok bool) {
	switch p := p.(type) {
	case *paneCountdownInput:
		return &p.digitEntry, countdownSlots.size(), &paneCountdown{}, true
	case *paneDeadlineInput:
		return &p.digitEntry, deadlineSlots.size(), &paneDeadline{}, true
	case *paneMenu, *paneControls, *paneConfigInfo, *paneCountdown, *paneDeadline:
		return nil, 0, nil, false
	default:
		panic("unknown pane")
	}
}

// move shifts the selection by delta, wrapping around.
func (c *menuCursor) move(delta, n int) {
	if n == 0 {
		return
	}
	c.index = ((c.index+delta)%n + n) % n
}

func (e *digitEntry) push(digit string, size int) {
	if len(e.digits) < size {
		e.digits += digit
	}
}

func (e *digitEntry) pop() {
	if len(e.digits) > 0 {
		e.digits = e.digits[:len(e.digits)-1]
	}
}
