//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFirstQueryShowsLocations(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithDataset(), "Failed to start app")
	require.True(t, tf.Ready(), "Should render the main screen")

	require.True(t, tf.SeePlain("Marunouchi Coffee Stand"), "Should list the first location")
	require.True(t, tf.SeePlain("Ueno Park Cafe"), "Should list the last location")
}

func TestSearchNarrowsResults(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithDataset(), "Failed to start app")
	require.True(t, tf.Ready(), "Should render the main screen")
	require.True(t, tf.SeePlain("Ginza Bakery"), "Should list locations")

	require.NoError(t, tf.Search("curry"))

	require.NoError(t, tf.WaitForE(func(s string) bool {
		plain := ansiRe.ReplaceAllString(s, "")
		return containsAll(plain, "Kanda Curry House", "?q=curry")
	}, 3*time.Second, "search should show the match and its link"))
}

func TestNoMatchesFallsBackToAllLocations(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	_, err = tf.CreateDataset(DefaultLocations)
	require.NoError(t, err)
	cfg, err := tf.CreateConfig("[locator]\ndisplay_all_on_no_results = true\n")
	require.NoError(t, err)

	require.NoError(t, tf.StartApp("-config", cfg))
	require.True(t, tf.Ready(), "Should render the main screen")

	require.NoError(t, tf.Search("zzzzzz"))
	require.True(t, tf.SeePlain("No matches, showing all locations"), "Should broaden an empty search")
	require.True(t, tf.SeePlain("Shibuya Records"), "Should list all locations")
}

func TestDeepLinkSeedsFirstQuery(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithDataset("-link", "https://example.com/locator?facet=category:cafe"))
	require.True(t, tf.Ready(), "Should render the main screen")

	require.True(t, tf.SeePlain("Ueno Park Cafe"), "Should list cafes")
	require.True(t, tf.SeePlain("facet=category%3Acafe"), "Should show the seeded link")
}

func TestInvalidDeepLinkIsReported(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartWithDataset("-link", "near=not,a,place"))
	require.True(t, tf.SeePlain("Ignoring invalid link"), "Should report the bad link")
	require.True(t, tf.SeePlain("Ginza Bakery"), "Should still run the default query")
}
