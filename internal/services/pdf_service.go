package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"apnadoctor/internal/models/db_models"
	"apnadoctor/internal/repositories"
	"apnadoctor/pkg/utils"
)

const (
	historySessionLimit = 20

	reportDisclaimer = "DISCLAIMER: This report is generated by an AI system (Apna Doctor). It is for informational purposes only and DOES NOT constitute professional medical advice, diagnosis, or treatment. Always seek the advice of your physician or other qualified health provider with any questions you may have regarding a medical condition."
)

// PDFDocument is a rendered attachment.
type PDFDocument struct {
	Filename string
	Content  []byte
}

type PDFServiceInterface interface {
	SessionReport(ctx context.Context, userID, sessionID uuid.UUID) (*PDFDocument, error)
	HistoryReport(ctx context.Context, userID uuid.UUID) (*PDFDocument, error)
}

type PDFService struct {
	accounts repositories.AccountRepository
	sessions repositories.SymptomRepository
	now      func() time.Time
}

func NewPDFService(accounts repositories.AccountRepository, sessions repositories.SymptomRepository) PDFServiceInterface {
	return &PDFService{accounts: accounts, sessions: sessions, now: time.Now}
}

func (p *PDFService) SessionReport(ctx context.Context, userID, sessionID uuid.UUID) (*PDFDocument, error) {
	session, err := p.sessions.FindByIdForUser(ctx, sessionID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if session == nil {
		return nil, utils.ErrSessionNotFound
	}
	account, err := p.account(ctx, userID)
	if err != nil {
		return nil, err
	}

	content, err := RenderSessionReport(account, session)
	if err != nil {
		return nil, err
	}
	return &PDFDocument{
		Filename: fmt.Sprintf("Health_Report_%s.pdf", session.ID),
		Content:  content,
	}, nil
}

func (p *PDFService) HistoryReport(ctx context.Context, userID uuid.UUID) (*PDFDocument, error) {
	account, err := p.account(ctx, userID)
	if err != nil {
		return nil, err
	}
	sessions, err := p.sessions.ListByUser(ctx, userID, 0, historySessionLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	content, err := RenderHistoryReport(account, sessions, p.now())
	if err != nil {
		return nil, err
	}
	name := strings.Join(strings.Fields(account.FullName), "-")
	if name == "" {
		name = "patient"
	}
	return &PDFDocument{
		Filename: fmt.Sprintf("health-history-%s.pdf", name),
		Content:  content,
	}, nil
}

func (p *PDFService) account(ctx context.Context, userID uuid.UUID) (*db_models.Account, error) {
	account, err := p.accounts.FindById(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}
	return account, nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func severityColor(s db_models.Severity) (int, int, int) {
	switch s {
	case db_models.SeverityCritical:
		return 239, 68, 68
	case db_models.SeveritySevere:
		return 249, 115, 22
	case db_models.SeverityModerate:
		return 234, 179, 8
	default:
		return 34, 197, 94
	}
}

func newReportPDF() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 30)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-26)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(148, 163, 184)
		pdf.MultiCell(0, 3.5, tr(reportDisclaimer), "", "C", false)
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	return pdf, tr
}

func heading(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(30, 41, 59)
	pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(51, 65, 85)
}

func labelValue(pdf *fpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(48, 6, tr(label), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(0, 6, tr(value), "", "L", false)
}

// RenderSessionReport lays out one analyzed session as a printable report.
func RenderSessionReport(account *db_models.Account, session *db_models.SymptomSession) ([]byte, error) {
	pdf, tr := newReportPDF()
	pdf.AddPage()

	pdf.SetFillColor(59, 130, 246)
	pdf.Rect(0, 0, 210, 34, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(18, 9)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(120, 10, "Apna Doctor", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 10, "www.apnadoctor.com", "", 1, "R", false, 0, "")
	pdf.SetX(18)
	pdf.CellFormat(0, 6, "AI-Powered Smart Symptom Checker", "", 1, "L", false, 0, "")

	pdf.SetY(42)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Medical Analysis Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	top := pdf.GetY()
	pdf.SetDrawColor(226, 232, 240)
	pdf.Rect(18, top, 174, 22, "D")
	gender := session.Gender
	if gender == "" {
		gender = account.Gender
	}
	rows := [][4]string{
		{"Patient Name:", account.FullName, "Date:", utils.FormatDisplayDate(utils.FromUnixSeconds(session.CreatedAt))},
		{"Age / Gender:", fmt.Sprintf("%d / %s", session.Age, orNA(gender)), "Report ID:", strings.ToUpper(session.ID.String()[:8])},
	}
	for i, row := range rows {
		pdf.SetXY(24, top+4+float64(i)*8)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(70, 6, tr(row[1]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(22, 6, row[2], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, row[3], "", 0, "L", false, 0, "")
	}
	pdf.SetY(top + 28)

	result := session.Analysis()

	heading(pdf, tr, "Clinical Assessment")
	labelValue(pdf, tr, "Reported Symptoms:", session.SymptomsText)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(48, 6, "Severity Level:", "", 0, "L", false, 0, "")
	pdf.SetTextColor(severityColor(session.Severity))
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, strings.ToUpper(string(session.Severity)), "", 1, "L", false, 0, "")
	pdf.SetTextColor(51, 65, 85)
	triage := "N/A"
	if result != nil {
		triage = strings.ToUpper(string(result.TriageLevel))
	}
	labelValue(pdf, tr, "Triage Recommendation:", triage)
	pdf.Ln(4)

	if result != nil && len(result.PossibleConditions) > 0 {
		heading(pdf, tr, "Possible Indications")
		for _, c := range result.PossibleConditions {
			pdf.SetX(22)
			pdf.MultiCell(0, 6, tr("- "+c), "", "L", false)
		}
		pdf.Ln(4)
	}

	if result != nil && len(result.Recommendations.Medicines) > 0 {
		heading(pdf, tr, "Suggested Approach")
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 116, 139)
		pdf.CellFormat(0, 5, "(Always consult a doctor before use)", "", 1, "L", false, 0, "")
		pdf.Ln(2)

		widths := []float64{60, 50, 64}
		pdf.SetFillColor(241, 245, 249)
		pdf.SetTextColor(15, 23, 42)
		pdf.SetFont("Helvetica", "B", 10)
		for i, h := range []string{"Medicine", "Dosage", "Notes"} {
			pdf.CellFormat(widths[i], 7, h, "B", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(51, 65, 85)
		for _, m := range result.Recommendations.Medicines {
			cells := []string{m.Name, orNA(m.Dose), orNA(m.Notes)}
			for i, c := range cells {
				pdf.CellFormat(widths[i], 7, tr(truncate(c, 42)), "B", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	if result != nil && result.FollowUpAdvice != "" {
		heading(pdf, tr, "Follow-up")
		pdf.MultiCell(0, 6, tr(result.FollowUpAdvice), "", "L", false)
	}

	return output(pdf)
}

// RenderHistoryReport prints the profile, health goals and a table of recent sessions.
func RenderHistoryReport(account *db_models.Account, sessions []db_models.SymptomSession, now time.Time) ([]byte, error) {
	pdf, tr := newReportPDF()
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(15, 23, 42)
	pdf.CellFormat(0, 12, "Health History Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	heading(pdf, tr, "Patient Profile")
	age := "N/A"
	if account.Age > 0 {
		age = fmt.Sprintf("%d", account.Age)
	}
	height, weight := "N/A", "N/A"
	if account.Height > 0 {
		height = fmt.Sprintf("%.0f cm", account.Height)
	}
	if account.Weight > 0 {
		weight = fmt.Sprintf("%.1f kg", account.Weight)
	}
	labelValue(pdf, tr, "Name:", account.FullName)
	labelValue(pdf, tr, "Email:", account.Email)
	labelValue(pdf, tr, "Age:", age)
	labelValue(pdf, tr, "Gender:", orNA(account.Gender))
	labelValue(pdf, tr, "Blood Type:", orNA(account.BloodType))
	labelValue(pdf, tr, "Height:", height)
	labelValue(pdf, tr, "Weight:", weight)
	pdf.Ln(4)

	if len(account.HealthGoals) > 0 {
		heading(pdf, tr, "Health Goals")
		for _, g := range account.HealthGoals {
			pdf.SetX(22)
			pdf.MultiCell(0, 6, tr("- "+g), "", "L", false)
		}
		pdf.Ln(4)
	}

	heading(pdf, tr, "Recent Symptom Checks")
	if len(sessions) == 0 {
		pdf.CellFormat(0, 6, "No symptom checks recorded yet.", "", 1, "L", false, 0, "")
	} else {
		widths := []float64{28, 90, 24, 32}
		pdf.SetFillColor(241, 245, 249)
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range []string{"Date", "Symptoms", "Severity", "Triage"} {
			pdf.CellFormat(widths[i], 7, h, "B", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for i := range sessions {
			s := &sessions[i]
			triage := "N/A"
			if r := s.Analysis(); r != nil {
				triage = string(r.TriageLevel)
			}
			cells := []string{
				utils.FormatDisplayDate(utils.FromUnixSeconds(s.CreatedAt)),
				truncate(s.SymptomsText, 60),
				string(s.Severity),
				triage,
			}
			for j, c := range cells {
				pdf.CellFormat(widths[j], 7, tr(c), "B", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(0, 6, "Generated on "+utils.FormatDisplayDate(now), "", 1, "C", false, 0, "")

	return output(pdf)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
