package forms

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"navident-console/internal/domain/entity"
)

type fakeLister[T any] struct {
	items    []T
	lastSize int
	fail     bool
}

func (l *fakeLister[T]) GetAll(ctx context.Context, req entity.PageRequest) (*entity.Page[T], error) {
	l.lastSize = req.Size
	if l.fail {
		return nil, errors.New("backend down")
	}
	return &entity.Page[T]{Content: l.items}, nil
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLoadPickersUsesConfiguredSize(t *testing.T) {
	patients := &fakeLister[entity.Patient]{items: []entity.Patient{{ID: "p1"}}}
	dentists := &fakeLister[entity.Dentist]{items: []entity.Dentist{{ID: "d1"}}}

	p := LoadPickers(context.Background(), patients, dentists, 25, discardLogger())

	if patients.lastSize != 25 || dentists.lastSize != 25 {
		t.Errorf("requested sizes = %d and %d, want 25", patients.lastSize, dentists.lastSize)
	}
	if len(p.Patients) != 1 || len(p.Dentists) != 1 {
		t.Errorf("picker contents = %d patients, %d dentists", len(p.Patients), len(p.Dentists))
	}
}

func TestLoadPickersFallsBackToDefaultSize(t *testing.T) {
	patients := &fakeLister[entity.Patient]{}

	LoadPickers(context.Background(), patients, nil, 0, discardLogger())

	if patients.lastSize != PickerSize {
		t.Errorf("requested size = %d, want %d", patients.lastSize, PickerSize)
	}
}

func TestLoadPickersFailureLeavesEmptyPicker(t *testing.T) {
	patients := &fakeLister[entity.Patient]{fail: true}

	p := LoadPickers(context.Background(), patients, nil, 10, discardLogger())

	if len(p.Patients) != 0 {
		t.Errorf("patients = %d, want empty", len(p.Patients))
	}
}
