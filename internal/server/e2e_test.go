//go:build e2e

package server

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ScatterBoard/internal/model"
)

var (
	pw          *playwright.Playwright
	testBrowser playwright.Browser
)

func TestMain(m *testing.M) {
	var err error
	pw, err = playwright.Run()
	if err != nil {
		log.Fatalf("could not start playwright: %v", err)
	}

	headless := os.Getenv("HEADLESS") != "false"
	testBrowser, err = pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		log.Fatalf("could not launch browser: %v", err)
	}

	code := m.Run()

	_ = testBrowser.Close()
	_ = pw.Stop()
	os.Exit(code)
}

func newPage(t *testing.T) playwright.Page {
	t.Helper()
	ctx, err := testBrowser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctx.Close() })

	page, err := ctx.NewPage()
	require.NoError(t, err)
	return page
}

// fetchClicks runs inside require.Eventually, so it reports failures as nil.
func fetchClicks(url string) []Click {
	resp, err := http.Get(url)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	var clicks []Click
	if err := json.NewDecoder(resp.Body).Decode(&clicks); err != nil {
		return nil
	}
	return clicks
}

func TestE2EClickWidgetCenter(t *testing.T) {
	s := New(model.NewBuiltinFixtureStore(), nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	page := newPage(t)
	_, err := page.Goto(ts.URL + "/fixtures/canvas-buttons?seed=21")
	require.NoError(t, err)

	layout, ok := s.CurrentLayout("canvas-buttons")
	require.True(t, ok)
	target := layout.Widgets[3]

	require.NoError(t, page.Mouse().Click(
		target.Rect.X+target.Rect.Width/2,
		target.Rect.Y+target.Rect.Height/2,
	))

	var clicks []Click
	require.Eventually(t, func() bool {
		clicks = fetchClicks(ts.URL+"/api/fixtures/canvas-buttons/clicks")
		return len(clicks) == 1
	}, 5*time.Second, 50*time.Millisecond)

	assert.True(t, clicks[0].Hit)
	assert.Equal(t, target.Request.ID, clicks[0].WidgetID)
	assert.Equal(t, "body", string(clicks[0].Part))
}

func TestE2EEveryButtonVisible(t *testing.T) {
	s := New(model.NewBuiltinFixtureStore(), nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	page := newPage(t)
	_, err := page.Goto(ts.URL + "/fixtures/buttons-and-inputs")
	require.NoError(t, err)

	layout, ok := s.CurrentLayout("buttons-and-inputs")
	require.True(t, ok)

	for _, w := range layout.Widgets {
		visible, err := page.Locator("#w-" + w.Request.ID).IsVisible()
		require.NoError(t, err)
		assert.True(t, visible, w.Request.Label)
	}
}

func TestE2EClearControlEmptiesInput(t *testing.T) {
	s := New(model.NewBuiltinFixtureStore(), nil)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	page := newPage(t)
	_, err := page.Goto(ts.URL + "/fixtures/buttons-and-inputs")
	require.NoError(t, err)

	layout, ok := s.CurrentLayout("buttons-and-inputs")
	require.True(t, ok)
	input := layout.Widgets[len(layout.Widgets)-1]
	require.NotNil(t, input.Companion)

	field := page.Locator("#w-" + input.Request.ID)
	require.NoError(t, field.Fill("hello"))
	require.NoError(t, page.Locator("#c-"+input.Request.ID).Click())

	value, err := field.InputValue()
	require.NoError(t, err)
	assert.Empty(t, value)
}
