package forms

import (
	"context"

	"github.com/sirupsen/logrus"

	"navident-console/internal/domain/entity"
)

// PickerSize is the fallback cap on how many reference records a form loads
// for its selectors, used when the caller passes no size.
const PickerSize = 100

type lister[T any] interface {
	GetAll(ctx context.Context, req entity.PageRequest) (*entity.Page[T], error)
}

// Pickers holds the reference drop-down data (patient and dentist selectors).
// Loaded once per form open; a load failure leaves the picker empty and the
// form otherwise usable, matching how the screens treat reference data as
// best effort.
type Pickers struct {
	Patients []entity.Patient
	Dentists []entity.Dentist
}

func LoadPickers(ctx context.Context, patients lister[entity.Patient], dentists lister[entity.Dentist], size int, log *logrus.Logger) *Pickers {
	if size <= 0 {
		size = PickerSize
	}
	p := &Pickers{}

	if patients != nil {
		page, err := patients.GetAll(ctx, entity.PageRequest{Size: size})
		if err != nil {
			log.Warnf("Failed to fetch patients for picker: %+v", err)
		} else {
			p.Patients = page.Content
		}
	}

	if dentists != nil {
		page, err := dentists.GetAll(ctx, entity.PageRequest{Size: size})
		if err != nil {
			log.Warnf("Failed to fetch dentists for picker: %+v", err)
		} else {
			p.Dentists = page.Content
		}
	}

	return p
}

func (p *Pickers) Patient(id string) (entity.Patient, bool) {
	for _, pa := range p.Patients {
		if pa.ID == id {
			return pa, true
		}
	}
	return entity.Patient{}, false
}

func (p *Pickers) Dentist(id string) (entity.Dentist, bool) {
	for _, d := range p.Dentists {
		if d.ID == id {
			return d, true
		}
	}
	return entity.Dentist{}, false
}
