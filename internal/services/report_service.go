package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"apnadoctor/internal/infra"
	"apnadoctor/internal/models/db_models"
	resp "apnadoctor/internal/models/response_models"
	"apnadoctor/internal/repositories"
	"apnadoctor/pkg/utils"
)

const MaxUploadSize int64 = 5 << 20

var allowedUploadTypes = map[string][]string{
	".jpeg": {"image/jpeg"},
	".jpg":  {"image/jpeg", "image/jpg"},
	".png":  {"image/png"},
	".pdf":  {"application/pdf"},
}

// UploadInput is one file taken from the multipart "report" field.
type UploadInput struct {
	OriginalName string
	MimeType     string
	Size         int64
	Body         io.Reader
}

// ReportFile is an opened stored report; the caller closes Body.
type ReportFile struct {
	Name     string
	MimeType string
	Size     int64
	Body     io.ReadCloser
}

type MedicalReportServiceInterface interface {
	Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (*resp.MedicalReportResponse, error)
	Analyze(ctx context.Context, userID, reportID uuid.UUID) (*resp.MedicalReportResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]resp.MedicalReportResponse, error)
	Delete(ctx context.Context, userID, reportID uuid.UUID) error
	Download(ctx context.Context, userID, reportID uuid.UUID) (*ReportFile, error)
}

type MedicalReportService struct {
	repo   repositories.MedicalReportRepository
	store  infra.FileStore
	vision utils.VisionClientInterface
	log    *zap.Logger
}

// NewMedicalReportService accepts a nil vision client; Analyze then reports the AI as unavailable.
func NewMedicalReportService(
	repo repositories.MedicalReportRepository,
	store infra.FileStore,
	vision utils.VisionClientInterface,
	log *zap.Logger,
) MedicalReportServiceInterface {
	return &MedicalReportService{repo: repo, store: store, vision: vision, log: log.Named("reports")}
}

// ValidateUpload enforces the size cap and requires both extension and MIME type to be an allowed image or PDF.
func ValidateUpload(name, mimeType string, size int64) error {
	if size > MaxUploadSize {
		return utils.ErrFileTooLarge
	}
	mimes, ok := allowedUploadTypes[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return utils.ErrInvalidFileType
	}
	mimeType = strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	for _, m := range mimes {
		if m == mimeType {
			return nil
		}
	}
	return utils.ErrInvalidFileType
}

func (m *MedicalReportService) Upload(ctx context.Context, userID uuid.UUID, in UploadInput) (*resp.MedicalReportResponse, error) {
	if err := ValidateUpload(in.OriginalName, in.MimeType, in.Size); err != nil {
		return nil, err
	}

	now := utils.NowUnixSeconds()
	filename := fmt.Sprintf("report-%d-%s%s", now, uuid.NewString()[:8], strings.ToLower(filepath.Ext(in.OriginalName)))

	path, err := m.store.Save(ctx, filename, in.MimeType, in.Body, in.Size)
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	report := &db_models.MedicalReport{
		UserID:       userID,
		Filename:     filename,
		OriginalName: filepath.Base(in.OriginalName),
		StoragePath:  path,
		MimeType:     in.MimeType,
		Size:         in.Size,
		UploadDate:   now,
	}
	if err := m.repo.Create(ctx, report); err != nil {
		if delErr := m.store.Delete(ctx, path); delErr != nil {
			m.log.Warn("remove orphaned upload", zap.String("path", path), zap.Error(delErr))
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	m.log.Info("report uploaded", zap.String("report_id", report.ID.String()), zap.Int64("size", in.Size))
	out := resp.NewMedicalReportResponse(report)
	return &out, nil
}

const reportAnalysisPrompt = `You are a medical document assistant for an educational tool. Read the attached medical report and explain it in plain language.
Respond ONLY with a JSON object of this shape:
{"summary": "string", "findings": ["string"], "recommendations": ["string"]}
Do not diagnose. Recommend consulting a doctor for anything abnormal.`

func (m *MedicalReportService) Analyze(ctx context.Context, userID, reportID uuid.UUID) (*resp.MedicalReportResponse, error) {
	report, err := m.find(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	if m.vision == nil {
		return nil, fmt.Errorf("%w: no vision model configured", utils.ErrAIUnavailable)
	}

	data, err := m.readAll(ctx, report.StoragePath)
	if err != nil {
		return nil, err
	}

	reply, err := m.vision.AnalyzeDocument(ctx, reportAnalysisPrompt, report.MimeType, data)
	if err != nil {
		m.log.Error("report analysis failed", zap.String("report_id", report.ID.String()), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrAIUnavailable, err)
	}

	var analysis db_models.ReportAnalysis
	if err := utils.DecodeJSONObject(reply, &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrAIUnavailable, err)
	}
	if analysis.Findings == nil {
		analysis.Findings = []string{}
	}
	if analysis.Recommendations == nil {
		analysis.Recommendations = []string{}
	}

	if err := m.repo.SaveAnalysis(ctx, report.ID, &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	report.AIAnalysis = datatypes.NewJSONType(&analysis)

	out := resp.NewMedicalReportResponse(report)
	return &out, nil
}

func (m *MedicalReportService) readAll(ctx context.Context, path string) ([]byte, error) {
	body, err := m.store.Open(ctx, path)
	if err != nil {
		if errors.Is(err, infra.ErrObjectNotFound) {
			return nil, utils.ErrFileNotFound
		}
		return nil, fmt.Errorf("open stored report: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read stored report: %w", err)
	}
	return data, nil
}

func (m *MedicalReportService) List(ctx context.Context, userID uuid.UUID) ([]resp.MedicalReportResponse, error) {
	reports, err := m.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return resp.NewMedicalReportResponses(reports), nil
}

func (m *MedicalReportService) Delete(ctx context.Context, userID, reportID uuid.UUID) error {
	report, err := m.find(ctx, userID, reportID)
	if err != nil {
		return err
	}

	if err := m.store.Delete(ctx, report.StoragePath); err != nil && !errors.Is(err, infra.ErrObjectNotFound) {
		return fmt.Errorf("delete stored report: %w", err)
	}

	ok, err := m.repo.Delete(ctx, report.ID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if !ok {
		return utils.ErrReportNotFound
	}
	return nil
}

func (m *MedicalReportService) Download(ctx context.Context, userID, reportID uuid.UUID) (*ReportFile, error) {
	report, err := m.find(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}

	body, err := m.store.Open(ctx, report.StoragePath)
	if err != nil {
		if errors.Is(err, infra.ErrObjectNotFound) {
			return nil, utils.ErrFileNotFound
		}
		return nil, fmt.Errorf("open stored report: %w", err)
	}
	return &ReportFile{
		Name:     report.OriginalName,
		MimeType: report.MimeType,
		Size:     report.Size,
		Body:     body,
	}, nil
}

func (m *MedicalReportService) find(ctx context.Context, userID, reportID uuid.UUID) (*db_models.MedicalReport, error) {
	report, err := m.repo.FindByIdForUser(ctx, reportID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if report == nil {
		return nil, utils.ErrReportNotFound
	}
	return report, nil
}
