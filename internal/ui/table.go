package ui

import (
	"strconv"

	"github.com/achasveachas/yt-tutorial-dashboard/internal/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = NewBold("#7D56F4").Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = NewStyle("#626262")
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// PlaylistTable renders playlists with their video counts.
//
// counts is keyed by playlist id; a missing entry is shown as 0.
func PlaylistTable(playlists []models.Playlist, counts map[int64]int) string {
	t := newTable("ID", "Title", "Playlist ID", "Videos")
	for _, p := range playlists {
		t.Row(strconv.FormatInt(p.ID, 10), p.Title, p.PlaylistID, strconv.Itoa(counts[p.ID]))
	}
	return t.Render()
}

// UserTable renders users without their password digests.
func UserTable(users []*models.User) string {
	t := newTable("ID", "Username", "Created")
	for _, u := range users {
		t.Row(strconv.FormatInt(u.ID, 10), u.Username, u.CreatedAt.Format("2006-01-02 15:04"))
	}
	return t.Render()
}
