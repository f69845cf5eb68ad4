package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nestwell/nestwell/internal/clients"
	"github.com/nestwell/nestwell/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SendWeeklyDigests sends each provider a summary of the last 7 days of
// check-ins for every mother who registered them, regardless of whether any
// entry was concerning. Concerning days are flagged within the table.
// Intended to be run weekly by cmd/digest.
func SendWeeklyDigests(ctx context.Context, db *gorm.DB, sender clients.EmailSender, redFlags []string, subject string, logger *zap.Logger) error {
	var mothers []models.User
	err := db.Where("ob_midwife_email <> '' OR doula_email <> ''").Find(&mothers).Error
	if err != nil {
		return err
	}

	since := dateOnly(time.Now().UTC().AddDate(0, 0, -7))
	var sent, failed int

	for i := range mothers {
		mother := &mothers[i]

		var checkIns []models.CheckIn
		err := db.Where("user_id = ? AND entry_date >= ?", mother.ID, since).
			Order("entry_date ASC").
			Find(&checkIns).Error
		if err != nil {
			return err
		}

		html, text := composeDigestEmail(mother, checkIns, redFlags)

		for _, recipient := range []string{mother.OBMidwifeEmail, mother.DoulaEmail} {
			if recipient == "" {
				continue
			}
			if sender.Send(ctx, recipient, subject, html, text) {
				sent++
			} else {
				failed++
				logger.Warn("digest send failed",
					zap.String("user_id", mother.ID),
					zap.String("recipient", recipient),
				)
			}
		}
	}

	logger.Info("weekly digests processed",
		zap.Int("mothers", len(mothers)),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)
	return nil
}

func composeDigestEmail(mother *models.User, checkIns []models.CheckIn, redFlags []string) (html, text string) {
	var rows strings.Builder
	var lines strings.Builder

	if len(checkIns) == 0 {
		rows.WriteString(`<tr><td colspan="3">No check-ins recorded this week.</td></tr>`)
		lines.WriteString("No check-ins recorded this week.\n")
	}

	for _, c := range checkIns {
		day := c.EntryDate.Format("Mon Jan 2")
		marker := ""
		if IsConcerning(c.Feeling, redFlags) {
			marker = " &#9888;"
		}
		rows.WriteString(fmt.Sprintf("<tr><td>%s</td><td>%s%s</td><td>%s</td></tr>",
			day, c.Feeling, marker, c.FeelingSupported))
		flag := ""
		if marker != "" {
			flag = " [flagged]"
		}
		lines.WriteString(fmt.Sprintf("%s: %s%s\n", day, c.Feeling, flag))
	}

	html = fmt.Sprintf(`<html><body>
<p>Weekly wellness summary for %s.</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Day</th><th>Feeling</th><th>Support level</th></tr>
%s
</table>
<p style="font-size:12px;color:#666;">Flagged entries (&#9888;) matched the concerning-feelings list. Automated summary — do not reply.</p>
</body></html>`, mother.Name, rows.String())

	text = fmt.Sprintf("Weekly wellness summary for %s:\n%s", mother.Name, lines.String())
	return html, text
}
