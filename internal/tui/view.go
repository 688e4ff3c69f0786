package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/viewstate"
)

const helpHome = "/ search • ←/→ genre • ↑/↓ move • enter open • t theme • q quit"
const helpDetail = "f favorite • ↑/↓ similar • enter open • esc back • t theme • q quit"

func (m Model) View() string {
	th := newTheme(m.dark)
	if m.screen == screenDetail {
		return renderDetail(th, m.detailState, m.cursor, m.spinner.View(), m.notice)
	}
	return renderHome(th, m.homeState, homeUI{
		search:     m.search.View(),
		searching:  m.focus == focusSearch,
		cursor:     m.cursor,
		suggestion: m.suggestion,
		spinner:    m.spinner.View(),
	})
}

type homeUI struct {
	search     string
	searching  bool
	cursor     int
	suggestion int
	spinner    string
}

func renderHome(th theme, s viewstate.HomeState, ui homeUI) string {
	var b strings.Builder
	b.WriteString(th.title.Render("Movie Discovery"))
	b.WriteString(th.faint.Render("  [" + th.name + "]"))
	b.WriteString("\n")

	switch s.Phase {
	case viewstate.PhaseLoading:
		b.WriteString(fmt.Sprintf("\n%s Loading movies...\n", ui.spinner))
		return b.String()
	case viewstate.PhaseError:
		b.WriteString("\n" + th.errText.Render("Could not load movies: "+s.Err.Error()) + "\n")
		b.WriteString("\n" + th.faint.Render("q quit") + "\n")
		return b.String()
	}

	if backdrop := s.Backdrop(); backdrop != "" {
		b.WriteString(th.faint.Render(fmt.Sprintf("backdrop %d/%d  %s", s.BackgroundIndex+1, len(s.Backdrops), backdrop)))
		b.WriteString("\n")
	}

	b.WriteString("\n" + ui.search + "\n")
	for i, sug := range s.Suggestions {
		line := "  " + sug.Title
		if ui.searching && i == ui.suggestion {
			line = th.selected.Render("› " + sug.Title)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + renderGenreBar(th, s.Genres, s.SelectedGenre) + "\n")

	if len(s.Featured) > 0 {
		b.WriteString(th.heading.Render("Now playing") + "\n")
		titles := make([]string, len(s.Featured))
		for i, f := range s.Featured {
			titles[i] = f.Title
		}
		b.WriteString(th.accent.Render(strings.Join(titles, " · ")) + "\n")
	}

	if len(s.Favorites) > 0 {
		b.WriteString(th.heading.Render("Favorites") + "\n")
		for _, f := range s.Favorites {
			b.WriteString("  ♥ " + f.Title + "\n")
		}
	}

	heading := s.Heading()
	if s.ListingPending {
		heading += " " + ui.spinner
	}
	b.WriteString(th.heading.Render(heading) + "\n")
	if s.ListingErr != nil {
		b.WriteString(th.errText.Render("Could not update the list: "+s.ListingErr.Error()) + "\n")
	}

	visible := s.Visible()
	if len(visible) == 0 {
		b.WriteString(th.faint.Render(viewstate.EmptyListingText) + "\n")
	}
	for i, movie := range visible {
		b.WriteString(renderCard(th, movie, s.GenreNamesOf(movie), !ui.searching && i == ui.cursor))
	}

	b.WriteString("\n" + th.faint.Render(helpHome) + "\n")
	return b.String()
}

func renderGenreBar(th theme, genres []models.Genre, selected *int) string {
	chips := make([]string, 0, len(genres)+1)
	style := th.chip
	if selected == nil {
		style = th.chipOn
	}
	chips = append(chips, style.Render(viewstate.AllGenresText))
	for _, g := range genres {
		style := th.chip
		if selected != nil && *selected == g.ID {
			style = th.chipOn
		}
		chips = append(chips, style.Render(g.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func renderCard(th theme, m models.MovieSummary, genres string, selected bool) string {
	title := "  " + m.Title
	if selected {
		title = th.selected.Render("› " + m.Title)
	}
	return title + "\n" +
		th.faint.Render("    "+genres) + "\n" +
		"    " + viewstate.OverviewExcerpt(m.Overview) + "\n"
}

func renderDetail(th theme, s viewstate.DetailState, cursor int, spin, notice string) string {
	var b strings.Builder

	switch s.Phase {
	case viewstate.PhaseLoading:
		b.WriteString(fmt.Sprintf("%s Loading...\n", spin))
		return b.String()
	case viewstate.PhaseError:
		b.WriteString(th.errText.Render("Could not load this title: "+s.Err.Error()) + "\n")
		b.WriteString("\n" + th.faint.Render("esc back • q quit") + "\n")
		return b.String()
	}

	movie := s.Movie
	heart := "♡ add to favorites"
	if s.IsFavorite {
		heart = "♥ in favorites"
	}
	b.WriteString(th.title.Render(movie.Title) + "  " + th.accent.Render(heart) + "\n")
	if notice != "" {
		b.WriteString(th.errText.Render(notice) + "\n")
	}
	b.WriteString(th.faint.Render(viewstate.DetailGenreNames(movie.Genres)) + "\n")
	if _, ok := viewstate.RatingStars(movie.Rating); ok {
		b.WriteString(th.stars.Render(viewstate.StarBar(movie.Rating)) + "\n")
	}
	if movie.ReleaseDate != "" {
		b.WriteString(th.faint.Render("Released "+movie.ReleaseDate) + "\n")
	}

	overview := movie.Overview
	if strings.TrimSpace(overview) == "" {
		overview = viewstate.NoOverviewText
	}
	b.WriteString("\n" + overview + "\n")

	b.WriteString(th.heading.Render("Where to watch") + "\n")
	b.WriteString(sectionLine(th, s.ProvidersStatus, spin, func() string {
		if len(s.Providers) == 0 {
			return viewstate.NoProvidersText
		}
		return strings.Join(s.Providers, ", ")
	}) + "\n")

	b.WriteString(th.heading.Render("Trailer") + "\n")
	b.WriteString(sectionLine(th, s.TrailerStatus, spin, func() string {
		if !viewstate.HasTrailer(movie) {
			return "No trailer"
		}
		return models.TrailerURL(movie.TrailerKey)
	}) + "\n")

	b.WriteString(th.heading.Render("Similar") + "\n")
	b.WriteString(sectionLine(th, s.SimilarStatus, spin, func() string {
		if len(s.Similar) == 0 {
			return viewstate.EmptyListingText
		}
		lines := make([]string, len(s.Similar))
		for i, m := range s.Similar {
			lines[i] = "  " + m.Title
			if i == cursor {
				lines[i] = th.selected.Render("› " + m.Title)
			}
		}
		return strings.Join(lines, "\n")
	}) + "\n")

	b.WriteString("\n" + th.faint.Render(helpDetail) + "\n")
	return b.String()
}

func sectionLine(th theme, status models.SectionStatus, spin string, ready func() string) string {
	switch status {
	case models.SectionPending:
		return spin
	case models.SectionUnavailable:
		return th.faint.Render(viewstate.UnavailableText)
	}
	return ready()
}
