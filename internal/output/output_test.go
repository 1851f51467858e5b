package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestUI() (*UI, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &UI{Out: out, ErrOut: errOut}, out, errOut
}

func TestInfo(t *testing.T) {
	u, out, _ := newTestUI()
	u.Info("hello %s", "world")
	assert.Contains(t, out.String(), "hello world")
}

func TestSuccess(t *testing.T) {
	u, out, _ := newTestUI()
	u.Success("done %d", 42)
	assert.Contains(t, out.String(), "done 42")
}

func TestWarning(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Warning("careful %s", "now")
	assert.Contains(t, errOut.String(), "careful now")
}

func TestError(t *testing.T) {
	u, _, errOut := newTestUI()
	u.Error("failed %s", "badly")
	assert.Contains(t, errOut.String(), "failed badly")
}

func TestVerboseLog_Enabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = true
	u.VerboseLog("detail %d", 1)
	assert.Contains(t, out.String(), "detail 1")
}

func TestVerboseLog_Disabled(t *testing.T) {
	u, out, _ := newTestUI()
	u.Verbose = false
	u.VerboseLog("detail %d", 1)
	assert.Empty(t, out.String())
}

func TestDryRunMsg_Enabled(t *testing.T) {
	u, _, errOut := newTestUI()
	u.DryRun = true
	u.DryRunMsg("would create %s", "file")
	assert.Contains(t, errOut.String(), "[DRY-RUN]")
}

func TestDryRunMsg_Disabled(t *testing.T) {
	u, _, errOut := newTestUI()
	u.DryRunMsg("would create %s", "file")
	assert.Empty(t, errOut.String())
}

func TestStatusColor_KnownAndUnknown(t *testing.T) {
	// Colored output still contains the label text.
	assert.Contains(t, StatusColor("completed"), "completed")
	assert.Contains(t, StatusColor("in-progress"), "in-progress")
	// Unknown values pass through verbatim with no escape codes.
	assert.Equal(t, "archived", StatusColor("archived"))
}

func TestPriorityColor_Unknown(t *testing.T) {
	assert.Equal(t, "urgent-ish", PriorityColor("urgent-ish"))
}

func TestCategoryColor_Unknown(t *testing.T) {
	assert.Equal(t, "misc", CategoryColor("misc"))
}

func TestScoreColor(t *testing.T) {
	assert.Contains(t, ScoreColor(95), "95")
	assert.Contains(t, ScoreColor(12), "12")
}
