package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// Store implements domain.SimulationStore on MySQL through gorm.
type Store struct {
	db *gorm.DB
}

// Open connects to MySQL and migrates the simulations table.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(&simulationModel{}); err != nil {
		return nil, fmt.Errorf("migrate simulations table: %w", err)
	}
	return db, nil
}

// NewStore creates a Store on an open database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Save implements domain.SimulationStore.Save.
func (s *Store) Save(ctx context.Context, sim *domain.PersistedSimulation) (string, error) {
	model, err := toModel(sim)
	if err != nil {
		return "", err
	}
	if model.ID == "" {
		model.ID = uuid.New().String()
	}

	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return model.ID, nil
}

// List implements domain.SimulationStore.List, newest first. Rows whose
// JSON snapshots predate the canonical shapes still decode; see the codec.
func (s *Store) List(ctx context.Context, ownerID string) ([]domain.PersistedSimulation, error) {
	var models []simulationModel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	sims := make([]domain.PersistedSimulation, 0, len(models))
	for _, model := range models {
		sim, err := fromModel(model)
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}
	return sims, nil
}

// Delete implements domain.SimulationStore.Delete, ownership-checked.
func (s *Store) Delete(ctx context.Context, ownerID, id string) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&simulationModel{})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSimulationNotFound
	}
	return nil
}

// toModel maps the domain record to a table row.
func toModel(sim *domain.PersistedSimulation) (simulationModel, error) {
	model := simulationModel{
		ID:          sim.ID,
		UserID:      sim.OwnerID,
		Departure:   sim.Departure,
		Destination: sim.Destination,
		StartDate:   sim.StartDate,
		EndDate:     sim.EndDate,
		Adults:      sim.Adults,
		Children:    sim.Children,
		TotalCost:   sim.TotalCost,
	}

	var err error
	if sim.SelectedFlight != nil {
		if model.SelectedFlight, err = json.Marshal(sim.SelectedFlight); err != nil {
			return simulationModel{}, fmt.Errorf("encode flight: %w", err)
		}
	}
	if sim.SelectedHotel != nil {
		if model.SelectedHotel, err = json.Marshal(sim.SelectedHotel); err != nil {
			return simulationModel{}, fmt.Errorf("encode hotel: %w", err)
		}
	}
	if len(sim.SelectedTours) > 0 {
		if model.SelectedActivities, err = json.Marshal(sim.SelectedTours); err != nil {
			return simulationModel{}, fmt.Errorf("encode tours: %w", err)
		}
	}
	return model, nil
}

// fromModel maps a table row back to the domain record with degraded
// tolerance for legacy JSON shapes.
func fromModel(model simulationModel) (domain.PersistedSimulation, error) {
	flight, err := decodeFlight(json.RawMessage(model.SelectedFlight))
	if err != nil {
		return domain.PersistedSimulation{}, err
	}
	hotel, err := decodeHotel(json.RawMessage(model.SelectedHotel))
	if err != nil {
		return domain.PersistedSimulation{}, err
	}
	tours, err := decodeTours(json.RawMessage(model.SelectedActivities))
	if err != nil {
		return domain.PersistedSimulation{}, err
	}

	return domain.PersistedSimulation{
		ID:             model.ID,
		OwnerID:        model.UserID,
		CreatedAt:      model.CreatedAt,
		Departure:      model.Departure,
		Destination:    model.Destination,
		StartDate:      model.StartDate,
		EndDate:        model.EndDate,
		Adults:         model.Adults,
		Children:       model.Children,
		SelectedFlight: flight,
		SelectedHotel:  hotel,
		SelectedTours:  tours,
		TotalCost:      model.TotalCost,
	}, nil
}

var _ domain.SimulationStore = (*Store)(nil)
