// internal/api/businesses/handlers.go
package businesses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/terrario-app/terrario/internal/api/apiutil"
	"github.com/terrario-app/terrario/internal/db"
	"github.com/terrario-app/terrario/internal/hours"
	"github.com/terrario-app/terrario/internal/ingest"
	"github.com/terrario-app/terrario/internal/media"
	"github.com/terrario-app/terrario/internal/models"
)

const (
	businessQueryTimeout = 5 * time.Second
	idPathParam          = "id"
	maxUploadMemory      = 32 << 20
)

var (
	store     *db.DB
	uploads   *media.Store
	storeOnce sync.Once

	// nowFunc feeds the status evaluator; swapped in tests for fixed instants.
	nowFunc = time.Now
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *db.DB, mediaStore *media.Store) {
	if database == nil {
		return
	}
	storeOnce.Do(func() {
		store = database
		uploads = mediaStore
	})
}

// GET /api/businesses
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Business store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), businessQueryTimeout)
	defer cancel()

	zone := strings.TrimSpace(r.URL.Query().Get("zone"))

	var (
		records []models.Business
		err     error
	)
	if zone != "" {
		records, err = s.ListBusinessesByZone(ctx, zone)
	} else {
		records, err = s.ListBusinesses(ctx)
	}
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list businesses")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load businesses")
		return
	}

	now := nowFunc()
	for i := range records {
		records[i].Status = hours.Evaluate(records[i].OpeningTime, records[i].ClosingTime, now)
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "success",
		"data":    records,
	}); err != nil {
		logger.Error().Err(err).Msg("Failed to write business list response")
	}
}

// GET /api/businesses/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Business store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := apiutil.ParsePositiveInt64Field(r.PathValue(idPathParam), "id")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), businessQueryTimeout)
	defer cancel()

	business, err := s.GetBusinessByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteError(w, http.StatusNotFound, "Business not found")
			return
		}
		logger.Error().Err(err).Int64("business_id", id).Msg("Failed to load business")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to load business")
		return
	}

	business.Status = hours.Evaluate(business.OpeningTime, business.ClosingTime, nowFunc())

	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "success",
		"data":    business,
	}); err != nil {
		logger.Error().Err(err).Int64("business_id", id).Msg("Failed to write business response")
	}
}

// POST /api/businesses
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Business store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	business, err := decodeBusinessRequest(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	business.WhatsApp = ingest.NormalizeWhatsApp(business.WhatsApp)
	if err := business.Validate(); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), businessQueryTimeout)
	defer cancel()

	id, err := s.CreateBusiness(ctx, business)
	if err != nil {
		logger.Error().Err(err).Str("name", business.Name).Msg("Failed to create business")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to create business")
		return
	}
	business.ID = id
	business.Status = hours.Evaluate(business.OpeningTime, business.ClosingTime, nowFunc())

	logger.Info().Int64("business_id", id).Str("name", business.Name).Msg("Business created")
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "success",
		"id":      id,
		"data":    business,
	}); err != nil {
		logger.Error().Err(err).Int64("business_id", id).Msg("Failed to write create response")
	}
}

// PUT /api/businesses/{id}
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Business store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := apiutil.ParsePositiveInt64Field(r.PathValue(idPathParam), "id")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	params, err := decodeUpdateRequest(r)
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := validateHoursPair(params.OpeningTime, params.ClosingTime); err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if params.WhatsApp != nil {
		normalized := ingest.NormalizeWhatsApp(*params.WhatsApp)
		params.WhatsApp = &normalized
	}

	ctx, cancel := context.WithTimeout(r.Context(), businessQueryTimeout)
	defer cancel()

	changes, err := s.UpdateBusiness(ctx, id, params)
	if err != nil {
		logger.Error().Err(err).Int64("business_id", id).Msg("Failed to update business")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to update business")
		return
	}
	if changes == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "Business not found")
		return
	}

	logger.Info().Int64("business_id", id).Msg("Business updated")
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "success",
		"changes": changes,
	}); err != nil {
		logger.Error().Err(err).Int64("business_id", id).Msg("Failed to write update response")
	}
}

// DELETE /api/businesses/{id}
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	s := loadStore()
	if s == nil {
		logger.Error().Msg("Business store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	id, err := apiutil.ParsePositiveInt64Field(r.PathValue(idPathParam), "id")
	if err != nil {
		apiutil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), businessQueryTimeout)
	defer cancel()

	changes, err := s.DeleteBusiness(ctx, id)
	if err != nil {
		logger.Error().Err(err).Int64("business_id", id).Msg("Failed to delete business")
		apiutil.WriteError(w, http.StatusInternalServerError, "Failed to delete business")
		return
	}
	if changes == 0 {
		apiutil.WriteError(w, http.StatusNotFound, "Business not found")
		return
	}

	logger.Info().Int64("business_id", id).Msg("Business deleted")
	if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "deleted",
		"changes": changes,
	}); err != nil {
		logger.Error().Err(err).Int64("business_id", id).Msg("Failed to write delete response")
	}
}

// decodeBusinessRequest accepts either a JSON body or the admin form's
// multipart encoding, where collection fields travel as JSON text and images
// travel as files.
func decodeBusinessRequest(r *http.Request) (models.Business, error) {
	if apiutil.IsJSONRequest(r) {
		var business models.Business
		if err := apiutil.DecodeJSON(r, &business); err != nil {
			return models.Business{}, err
		}
		business.Normalize()
		return business, nil
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return models.Business{}, fmt.Errorf("invalid form data")
	}

	business := models.Business{
		Name:         r.FormValue("name"),
		Category:     r.FormValue("category"),
		Specialty:    r.FormValue("specialty"),
		DeliveryTime: r.FormValue("deliveryTime"),
		Image:        r.FormValue("image"),
		Logo:         r.FormValue("logo"),
		Hours:        r.FormValue("hours"),
		OpeningTime:  r.FormValue("opening_time"),
		ClosingTime:  r.FormValue("closing_time"),
		Description:  r.FormValue("description"),
		Latitude:     r.FormValue("latitude"),
		Longitude:    r.FormValue("longitude"),
		WhatsApp:     r.FormValue("whatsapp"),
		Zone:         r.FormValue("zone"),
	}
	business.Normalize()

	if raw := r.FormValue("distances"); raw != "" {
		_ = json.Unmarshal([]byte(raw), &business.Distances)
	}
	if raw := r.FormValue("keywords"); raw != "" {
		_ = json.Unmarshal([]byte(raw), &business.Keywords)
	}
	if raw := apiutil.FirstNonEmpty(r.FormValue("gallery_json"), r.FormValue("gallery")); raw != "" {
		_ = json.Unmarshal([]byte(raw), &business.Gallery)
	}
	if raw := r.FormValue("payment_methods"); raw != "" {
		_ = json.Unmarshal([]byte(raw), &business.PaymentMethods)
	}

	var err error
	if business.IsPopular, err = apiutil.ParseOptionalBool(r.FormValue("is_popular")); err != nil {
		return models.Business{}, fmt.Errorf("is_popular must be true or false")
	}
	if business.IsNearby, err = apiutil.ParseOptionalBool(r.FormValue("is_nearby")); err != nil {
		return models.Business{}, fmt.Errorf("is_nearby must be true or false")
	}

	if err := saveUploadedImages(r, &business.Image, &business.Logo, &business.Gallery); err != nil {
		return models.Business{}, err
	}
	return business, nil
}

func decodeUpdateRequest(r *http.Request) (db.UpdateBusinessParams, error) {
	if apiutil.IsJSONRequest(r) {
		var req updateRequest
		if err := apiutil.DecodeJSON(r, &req); err != nil {
			return db.UpdateBusinessParams{}, err
		}
		return req.toParams(), nil
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return db.UpdateBusinessParams{}, fmt.Errorf("invalid form data")
	}

	params := db.UpdateBusinessParams{
		Name:         formField(r, "name"),
		Category:     formField(r, "category"),
		Specialty:    formField(r, "specialty"),
		DeliveryTime: formField(r, "deliveryTime"),
		Image:        formField(r, "image"),
		Logo:         formField(r, "logo"),
		Hours:        formField(r, "hours"),
		OpeningTime:  formField(r, "opening_time"),
		ClosingTime:  formField(r, "closing_time"),
		Description:  formField(r, "description"),
		Latitude:     formField(r, "latitude"),
		Longitude:    formField(r, "longitude"),
		WhatsApp:     formField(r, "whatsapp"),
		Zone:         formField(r, "zone"),
	}

	if raw := formField(r, "distances"); raw != nil {
		dist := map[string]string{}
		_ = json.Unmarshal([]byte(*raw), &dist)
		params.Distances = &dist
	}
	if raw := formField(r, "keywords"); raw != nil {
		kw := []string{}
		_ = json.Unmarshal([]byte(*raw), &kw)
		params.Keywords = &kw
	}
	if raw := firstFormField(r, "gallery_json", "gallery"); raw != nil {
		gallery := []string{}
		_ = json.Unmarshal([]byte(*raw), &gallery)
		params.Gallery = &gallery
	}
	if raw := formField(r, "payment_methods"); raw != nil {
		pm := map[string]bool{}
		_ = json.Unmarshal([]byte(*raw), &pm)
		params.PaymentMethods = &pm
	}
	if raw := formField(r, "is_popular"); raw != nil {
		value, err := apiutil.ParseOptionalBool(*raw)
		if err != nil {
			return db.UpdateBusinessParams{}, fmt.Errorf("is_popular must be true or false")
		}
		params.IsPopular = &value
	}
	if raw := formField(r, "is_nearby"); raw != nil {
		value, err := apiutil.ParseOptionalBool(*raw)
		if err != nil {
			return db.UpdateBusinessParams{}, fmt.Errorf("is_nearby must be true or false")
		}
		params.IsNearby = &value
	}

	if err := saveUpdateImages(r, &params); err != nil {
		return db.UpdateBusinessParams{}, err
	}
	return params, nil
}

type updateRequest struct {
	Name           *string            `json:"name"`
	Category       *string            `json:"category"`
	Specialty      *string            `json:"specialty"`
	DeliveryTime   *string            `json:"deliveryTime"`
	Image          *string            `json:"image"`
	Logo           *string            `json:"logo"`
	Hours          *string            `json:"hours"`
	OpeningTime    *string            `json:"opening_time"`
	ClosingTime    *string            `json:"closing_time"`
	Distances      *map[string]string `json:"distances"`
	Keywords       *[]string          `json:"keywords"`
	Description    *string            `json:"description"`
	Gallery        *[]string          `json:"gallery"`
	Latitude       *string            `json:"latitude"`
	Longitude      *string            `json:"longitude"`
	WhatsApp       *string            `json:"whatsapp"`
	IsPopular      *bool              `json:"is_popular"`
	IsNearby       *bool              `json:"is_nearby"`
	PaymentMethods *map[string]bool   `json:"payment_methods"`
	Zone           *string            `json:"zone"`
}

func (req updateRequest) toParams() db.UpdateBusinessParams {
	return db.UpdateBusinessParams{
		Name:           req.Name,
		Category:       req.Category,
		Specialty:      req.Specialty,
		DeliveryTime:   req.DeliveryTime,
		Image:          req.Image,
		Logo:           req.Logo,
		Hours:          req.Hours,
		OpeningTime:    req.OpeningTime,
		ClosingTime:    req.ClosingTime,
		Distances:      req.Distances,
		Keywords:       req.Keywords,
		Description:    req.Description,
		Gallery:        req.Gallery,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		WhatsApp:       req.WhatsApp,
		IsPopular:      req.IsPopular,
		IsNearby:       req.IsNearby,
		PaymentMethods: req.PaymentMethods,
		Zone:           req.Zone,
	}
}

// validateHoursPair keeps the both-or-neither invariant intact across partial
// updates: a request touching one side of the pair must provide the other.
func validateHoursPair(opening, closing *string) error {
	if opening == nil && closing == nil {
		return nil
	}
	if opening == nil || closing == nil {
		return fmt.Errorf("opening_time and closing_time must be updated together")
	}
	if (*opening == "") != (*closing == "") {
		return fmt.Errorf("opening_time and closing_time must be set together")
	}
	if *opening == "" {
		return nil
	}
	for field, value := range map[string]string{"opening_time": *opening, "closing_time": *closing} {
		if _, err := time.Parse("15:04", value); err != nil {
			return fmt.Errorf("%s must be in HH:MM format", field)
		}
	}
	return nil
}

func saveUploadedImages(r *http.Request, image, logo *string, gallery *[]string) error {
	u := loadUploads()
	if u == nil || r.MultipartForm == nil {
		return nil
	}
	if url, ok, err := saveFirstFile(r, u, "image"); err != nil {
		return err
	} else if ok {
		*image = url
	}
	if url, ok, err := saveFirstFile(r, u, "logo"); err != nil {
		return err
	} else if ok {
		*logo = url
	}
	for _, header := range r.MultipartForm.File["gallery"] {
		url, err := saveFileHeader(u, header)
		if err != nil {
			return err
		}
		*gallery = append(*gallery, url)
	}
	return nil
}

func saveUpdateImages(r *http.Request, params *db.UpdateBusinessParams) error {
	u := loadUploads()
	if u == nil || r.MultipartForm == nil {
		return nil
	}
	if url, ok, err := saveFirstFile(r, u, "image"); err != nil {
		return err
	} else if ok {
		params.Image = &url
	}
	if url, ok, err := saveFirstFile(r, u, "logo"); err != nil {
		return err
	} else if ok {
		params.Logo = &url
	}
	if files := r.MultipartForm.File["gallery"]; len(files) > 0 {
		gallery := []string{}
		if params.Gallery != nil {
			gallery = *params.Gallery
		}
		for _, header := range files {
			url, err := saveFileHeader(u, header)
			if err != nil {
				return err
			}
			gallery = append(gallery, url)
		}
		params.Gallery = &gallery
	}
	return nil
}

func saveFirstFile(r *http.Request, u *media.Store, field string) (string, bool, error) {
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return "", false, nil
	}
	url, err := saveFileHeader(u, files[0])
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

func saveFileHeader(u *media.Store, header *multipart.FileHeader) (string, error) {
	url, err := u.SaveMultipart(header)
	if err != nil {
		return "", fmt.Errorf("failed to store uploaded file: %w", err)
	}
	return url, nil
}

func formField(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func firstFormField(r *http.Request, keys ...string) *string {
	for _, key := range keys {
		if value := formField(r, key); value != nil {
			return value
		}
	}
	return nil
}

func loadStore() *db.DB {
	return store
}

func loadUploads() *media.Store {
	return uploads
}
