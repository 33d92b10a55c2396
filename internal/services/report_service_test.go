package services

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"apnadoctor/internal/infra"
	"apnadoctor/internal/models/db_models"
	"apnadoctor/pkg/utils"
)

func TestValidateUpload(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		mime    string
		size    int64
		wantErr error
	}{
		{"pdf", "lab.pdf", "application/pdf", 1024, nil},
		{"upper-case jpeg", "SCAN.JPG", "image/jpeg", 1024, nil},
		{"png with params", "xray.png", "image/png; charset=binary", 1024, nil},
		{"exactly at limit", "lab.pdf", "application/pdf", MaxUploadSize, nil},
		{"over limit", "lab.pdf", "application/pdf", MaxUploadSize + 1, utils.ErrFileTooLarge},
		{"gif rejected", "anim.gif", "image/gif", 10, utils.ErrInvalidFileType},
		{"extension and mime disagree", "lab.pdf", "image/png", 10, utils.ErrInvalidFileType},
		{"no extension", "report", "application/pdf", 10, utils.ErrInvalidFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.file, tt.mime, tt.size)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

type fakeReportRepo struct {
	items     []db_models.MedicalReport
	createErr error
}

func (f *fakeReportRepo) Create(_ context.Context, r *db_models.MedicalReport) error {
	if f.createErr != nil {
		return f.createErr
	}
	r.ID = uuid.New()
	f.items = append(f.items, *r)
	return nil
}

func (f *fakeReportRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]db_models.MedicalReport, error) {
	var out []db_models.MedicalReport
	for _, r := range f.items {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) FindByIdForUser(_ context.Context, id, userID uuid.UUID) (*db_models.MedicalReport, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			r := f.items[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeReportRepo) SaveAnalysis(_ context.Context, id uuid.UUID, analysis *db_models.ReportAnalysis) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].AIAnalysis = datatypes.NewJSONType(analysis)
			return nil
		}
	}
	return errFake
}

func (f *fakeReportRepo) Delete(_ context.Context, id, userID uuid.UUID) (bool, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeVision struct {
	reply    string
	err      error
	mimeType string
	data     []byte
}

func (f *fakeVision) AnalyzeDocument(_ context.Context, _, mimeType string, data []byte) (string, error) {
	f.mimeType = mimeType
	f.data = data
	return f.reply, f.err
}

func newReportFixture(t *testing.T, vision utils.VisionClientInterface) (*fakeReportRepo, string, MedicalReportServiceInterface) {
	t.Helper()
	dir := t.TempDir()
	store, err := infra.NewLocalFileStore(dir)
	require.NoError(t, err)
	repo := &fakeReportRepo{}
	return repo, dir, NewMedicalReportService(repo, store, vision, zap.NewNop())
}

func upload(t *testing.T, svc MedicalReportServiceInterface, userID uuid.UUID, body string) uuid.UUID {
	t.Helper()
	out, err := svc.Upload(context.Background(), userID, UploadInput{
		OriginalName: "blood-test.PDF",
		MimeType:     "application/pdf",
		Size:         int64(len(body)),
		Body:         strings.NewReader(body),
	})
	require.NoError(t, err)
	return uuid.MustParse(out.ID)
}

func TestMedicalReportService_UploadDownloadDelete(t *testing.T) {
	ctx := context.Background()
	repo, dir, svc := newReportFixture(t, nil)
	owner := uuid.New()

	id := upload(t, svc, owner, "%PDF-1.4 hemoglobin 13.2")
	require.Len(t, repo.items, 1)
	stored := repo.items[0]
	assert.Regexp(t, `^report-\d+-[0-9a-f]{8}\.pdf$`, stored.Filename)
	assert.Equal(t, "blood-test.PDF", stored.OriginalName)

	list, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].AIAnalysis)

	file, err := svc.Download(ctx, owner, id)
	require.NoError(t, err)
	content, err := io.ReadAll(file.Body)
	require.NoError(t, err)
	require.NoError(t, file.Body.Close())
	assert.Equal(t, "%PDF-1.4 hemoglobin 13.2", string(content))
	assert.Equal(t, "application/pdf", file.MimeType)

	_, err = svc.Download(ctx, uuid.New(), id)
	assert.ErrorIs(t, err, utils.ErrReportNotFound)

	require.NoError(t, svc.Delete(ctx, owner, id))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.ErrorIs(t, svc.Delete(ctx, owner, id), utils.ErrReportNotFound)
}

func TestMedicalReportService_UploadRejectsBeforeStoring(t *testing.T) {
	repo, dir, svc := newReportFixture(t, nil)

	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		OriginalName: "notes.txt",
		MimeType:     "text/plain",
		Size:         4,
		Body:         strings.NewReader("hello"),
	})
	assert.ErrorIs(t, err, utils.ErrInvalidFileType)
	assert.Empty(t, repo.items)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestMedicalReportService_UploadCleansUpOnDBError(t *testing.T) {
	repo, dir, svc := newReportFixture(t, nil)
	repo.createErr = errFake

	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{
		OriginalName: "scan.png",
		MimeType:     "image/png",
		Size:         3,
		Body:         strings.NewReader("png"),
	})
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestMedicalReportService_Analyze(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("stores the analysis", func(t *testing.T) {
		vision := &fakeVision{reply: "```json\n{\"summary\":\"Normal CBC\",\"findings\":[\"Hb 13.2\"]}\n```"}
		repo, _, svc := newReportFixture(t, vision)
		id := upload(t, svc, owner, "%PDF cbc")

		out, err := svc.Analyze(ctx, owner, id)
		require.NoError(t, err)
		require.NotNil(t, out.AIAnalysis)
		assert.Equal(t, "Normal CBC", out.AIAnalysis.Summary)
		assert.Equal(t, []string{"Hb 13.2"}, out.AIAnalysis.Findings)
		assert.NotNil(t, out.AIAnalysis.Recommendations)

		assert.Equal(t, "application/pdf", vision.mimeType)
		assert.Equal(t, "%PDF cbc", string(vision.data))
		assert.Equal(t, "Normal CBC", repo.items[0].AIAnalysis.Data().Summary)
	})

	t.Run("no vision model", func(t *testing.T) {
		_, _, svc := newReportFixture(t, nil)
		id := upload(t, svc, owner, "%PDF")
		_, err := svc.Analyze(ctx, owner, id)
		assert.ErrorIs(t, err, utils.ErrAIUnavailable)
	})

	t.Run("model error", func(t *testing.T) {
		_, _, svc := newReportFixture(t, &fakeVision{err: errFake})
		id := upload(t, svc, owner, "%PDF")
		_, err := svc.Analyze(ctx, owner, id)
		assert.ErrorIs(t, err, utils.ErrAIUnavailable)
	})

	t.Run("stored file missing", func(t *testing.T) {
		repo, _, svc := newReportFixture(t, &fakeVision{reply: "{}"})
		id := upload(t, svc, owner, "%PDF")
		require.NoError(t, os.Remove(repo.items[0].StoragePath))

		_, err := svc.Analyze(ctx, owner, id)
		assert.ErrorIs(t, err, utils.ErrFileNotFound)
	})
}
