package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"apnadoctor/internal/models/request_models"
	resp "apnadoctor/internal/models/response_models"
	mem "apnadoctor/pkg/memcache"
	"apnadoctor/pkg/utils"
)

const (
	DoctorSourceAI       = "ai"
	DoctorSourceFallback = "fallback"

	doctorResultSize      = 4
	doctorCacheTTL        = time.Hour
	doctorCacheMaxEntries = 512
)

type DoctorServiceInterface interface {
	Search(ctx context.Context, query request_models.DoctorSearchQuery) (*resp.DoctorSearchResponse, error)
}

type DoctorService struct {
	llm   utils.LLMClientInterface
	cache *mem.TTLCache[*resp.DoctorSearchResponse]
	log   *zap.Logger
}

// NewDoctorService accepts a nil llm and then always serves the fallback directory.
func NewDoctorService(llm utils.LLMClientInterface, log *zap.Logger) DoctorServiceInterface {
	return &DoctorService{
		llm:   llm,
		cache: mem.NewTTLCache[*resp.DoctorSearchResponse](doctorCacheTTL, doctorCacheMaxEntries),
		log:   log.Named("doctors"),
	}
}

func doctorCacheKey(city, specialty string) string {
	return strings.ToLower(city) + "|" + strings.ToLower(specialty)
}

func (d *DoctorService) Search(ctx context.Context, query request_models.DoctorSearchQuery) (*resp.DoctorSearchResponse, error) {
	city := strings.TrimSpace(query.City)
	specialty := strings.TrimSpace(query.Specialty)
	key := doctorCacheKey(city, specialty)

	if cached, ok := d.cache.Get(key); ok {
		return cached, nil
	}

	result := &resp.DoctorSearchResponse{Source: DoctorSourceAI}
	doctors, err := d.searchWithLLM(ctx, city, specialty)
	if err != nil || len(doctors) == 0 {
		if err != nil {
			d.log.Warn("doctor search via llm failed, using fallback", zap.Error(err))
		}
		doctors = FallbackDoctors(city, specialty)
		result.Source = DoctorSourceFallback
	}
	if len(doctors) > doctorResultSize {
		doctors = doctors[:doctorResultSize]
	}
	result.Recommended = doctors

	// Fallback answers are not cached so a recovered provider is used on the next request.
	if result.Source == DoctorSourceAI {
		d.cache.Set(key, result)
	}
	return result, nil
}

const doctorSystemPrompt = "You are a medical directory assistant for India. Always respond with valid JSON only, no markdown. Provide real, accurate information about doctors and hospitals in India."

func buildDoctorPrompt(city, specialty string) string {
	if city == "" {
		city = "Any major city in India"
	}
	if specialty == "" {
		specialty = "General Physician"
	}
	return fmt.Sprintf(`You are a medical directory assistant for India. Find real, well-known doctors and hospitals.

SEARCH REQUEST:
- City/Location: %s
- Specialty needed: %s

Provide exactly 4 real, reputable doctors or hospitals in India that match this search. Mix private and government institutions and give hospital main phone numbers with STD code.

Respond ONLY with JSON of this shape:
{"doctors": [{"id": "string", "name": "string", "specialty": "string", "hospital": "string", "city": "string", "experience": "string", "rating": 4.5, "contact": "string", "address": "string"}]}`, city, specialty)
}

type llmDoctor struct {
	ID         any     `json:"id"`
	Name       string  `json:"name"`
	Specialty  string  `json:"specialty"`
	Hospital   string  `json:"hospital"`
	City       string  `json:"city"`
	Experience string  `json:"experience"`
	Rating     float64 `json:"rating"`
	Contact    string  `json:"contact"`
	Address    string  `json:"address"`
}

func (d *DoctorService) searchWithLLM(ctx context.Context, city, specialty string) ([]resp.Doctor, error) {
	if d.llm == nil {
		return nil, nil
	}

	reply, err := d.llm.Complete(ctx, utils.LLMRequest{
		System:      doctorSystemPrompt,
		Messages:    []utils.LLMMessage{{Role: utils.LLMRoleUser, Content: buildDoctorPrompt(city, specialty)}},
		Temperature: 0.5,
		MaxTokens:   1500,
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Doctors []llmDoctor `json:"doctors"`
	}
	if err := utils.DecodeJSONObject(reply, &parsed); err != nil {
		return nil, fmt.Errorf("parse doctor reply: %w", err)
	}

	out := make([]resp.Doctor, 0, len(parsed.Doctors))
	for i, doc := range parsed.Doctors {
		if strings.TrimSpace(doc.Name) == "" {
			continue
		}
		id := fmt.Sprint(doc.ID)
		if doc.ID == nil || id == "" {
			id = fmt.Sprintf("ai%d", i+1)
		}
		out = append(out, resp.Doctor{
			ID:         id,
			Name:       doc.Name,
			Specialty:  doc.Specialty,
			Hospital:   doc.Hospital,
			City:       doc.City,
			Experience: doc.Experience,
			Rating:     doc.Rating,
			Contact:    doc.Contact,
			Address:    doc.Address,
		})
	}
	return out, nil
}

// FallbackDoctors is the static directory served when the model cannot answer.
func FallbackDoctors(city, specialty string) []resp.Doctor {
	orDefault := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	specialtyLabel := orDefault(specialty, "Multi-Specialty")

	return []resp.Doctor{
		{
			ID:         "f1",
			Name:       "All India Institute of Medical Sciences (AIIMS)",
			Specialty:  specialtyLabel,
			Hospital:   "AIIMS Delhi",
			City:       "New Delhi",
			Experience: "Premier Government Institute",
			Rating:     5.0,
			Contact:    "011-26588500",
			Address:    "Ansari Nagar, New Delhi",
		},
		{
			ID:         "f2",
			Name:       "Apollo Hospitals",
			Specialty:  specialtyLabel,
			Hospital:   "Apollo Hospitals",
			City:       orDefault(city, "Chennai"),
			Experience: "Leading Private Hospital Chain",
			Rating:     4.8,
			Contact:    "1860-500-1066",
			Address:    "Greams Road, Chennai",
		},
		{
			ID:         "f3",
			Name:       "Fortis Healthcare",
			Specialty:  specialtyLabel,
			Hospital:   "Fortis Hospital",
			City:       orDefault(city, "Gurugram"),
			Experience: "Trusted Healthcare Network",
			Rating:     4.7,
			Contact:    "0124-4962200",
			Address:    "Sector 44, Gurugram",
		},
		{
			ID:         "f4",
			Name:       "Medanta - The Medicity",
			Specialty:  specialtyLabel,
			Hospital:   "Medanta Hospital",
			City:       "Gurugram",
			Experience: "Super-Specialty Hospital",
			Rating:     4.9,
			Contact:    "0124-4141414",
			Address:    "Sector 38, Gurugram",
		},
	}
}
