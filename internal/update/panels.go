package update

import (
	"strings"

	"github.com/sandeepkv93/taskjar/internal/insight"
	"github.com/sandeepkv93/taskjar/internal/notify"
	"github.com/sandeepkv93/taskjar/internal/views"
)

const notificationHistory = 40

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(string(n.Level), n.Title+": "+n.Body)
}

func (m Model) renderAdSlot() string {
	if m.Ad == nil {
		return ""
	}
	return views.RenderAd(views.AdData{
		Icon:        m.Ad.Icon,
		Title:       m.Ad.Title,
		Description: m.Ad.Description,
		CTA:         m.Ad.CTA,
	})
}

// maybeShowAd fills the sponsored slot when the store's gating allows it.
func (m *Model) maybeShowAd() {
	creative, ok, err := m.store.ShowAd(m.ctx)
	if err != nil {
		m.setError(err)
	}
	if ok {
		m.Ad = &creative
	}
}

// maybeSurprise may hand out a quote, joke or tip with the given chance.
func (m *Model) maybeSurprise(chance float64) {
	s, ok := insight.DrawSurprise(m.dice, chance)
	if !ok {
		return
	}
	m.Surprise = &s
	m.notify("Surprise "+string(s.Kind), s.Text, notify.LevelReward)
}

func (m *Model) notify(title, body string, level notify.Level) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := notify.Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.store.Now(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > notificationHistory {
		m.Notifications = m.Notifications[len(m.Notifications)-notificationHistory:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(m.ctx, n)
	}
}
