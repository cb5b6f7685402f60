package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

var _ repository.SliderRepository = (*SliderRepo)(nil)

const sliderColumns = `id, image, caption, status, created_at, updated_at`

// SliderRepo implementación del puerto SliderRepository sobre PostgreSQL.
type SliderRepo struct {
	q Querier
}

// NewSliderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSliderRepository(q Querier) *SliderRepo {
	return &SliderRepo{q: q}
}

// Create persiste un slider.
func (r *SliderRepo) Create(s *entity.Slider) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO sliders (id, image, caption, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Image, s.Caption, s.Status, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert slider: %w", err)
	}
	return nil
}

// GetByID obtiene un slider por ID.
func (r *SliderRepo) GetByID(id string) (*entity.Slider, error) {
	var s entity.Slider
	err := r.q.QueryRow(context.Background(),
		`SELECT `+sliderColumns+` FROM sliders WHERE id = $1`, id).Scan(
		&s.ID, &s.Image, &s.Caption, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slider: %w", err)
	}
	return &s, nil
}

// Update actualiza un slider.
func (r *SliderRepo) Update(s *entity.Slider) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sliders SET image = $2, caption = $3, status = $4, updated_at = $5 WHERE id = $1`,
		s.ID, s.Image, s.Caption, s.Status, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update slider: %w", err)
	}
	return nil
}

// SetStatus cambia solo la visibilidad.
func (r *SliderRepo) SetStatus(id string, status bool) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sliders SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("set slider status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista sliders; con OnlyVisible solo los activos.
func (r *SliderRepo) List(f repository.ListFilter) ([]*entity.Slider, error) {
	query := `SELECT ` + sliderColumns + ` FROM sliders`
	if f.OnlyVisible {
		query += ` WHERE status = true`
	}
	query += ` ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.scanMany(query, f.Limit, f.Offset)
}

// Search busca sliders por caption.
func (r *SliderRepo) Search(q string, f repository.ListFilter) ([]*entity.Slider, error) {
	query := `SELECT ` + sliderColumns + ` FROM sliders WHERE caption ILIKE $1`
	if f.OnlyVisible {
		query += ` AND status = true`
	}
	query += ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.scanMany(query, likePattern(q), f.Limit, f.Offset)
}

// ListActive lista todos los sliders visibles para el carrusel público.
func (r *SliderRepo) ListActive() ([]*entity.Slider, error) {
	return r.scanMany(`SELECT ` + sliderColumns + ` FROM sliders WHERE status = true ORDER BY created_at DESC`)
}

func (r *SliderRepo) scanMany(query string, args ...any) ([]*entity.Slider, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sliders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Slider
	for rows.Next() {
		var s entity.Slider
		if err := rows.Scan(&s.ID, &s.Image, &s.Caption, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan slider: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Delete elimina un slider. El archivo de imagen lo borra el hook post-delete del usecase.
func (r *SliderRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM sliders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete slider: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
