package dto

import "github.com/jhoicas/foodtruck-api/internal/domain/entity"

// ContactHistoryResponse todo lo asociado a un contacto, vivo y archivado.
type ContactHistoryResponse struct {
	Contact          entity.Record   `json:"contact"`
	Events           []entity.Record `json:"events"`
	Catering         []entity.Record `json:"catering"`
	ArchivedEvents   []entity.Record `json:"archived_events"`
	ArchivedCatering []entity.Record `json:"archived_catering"`
}
