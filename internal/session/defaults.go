package session

import (
	"github.com/google/uuid"
	"github.com/sandeepkv93/routined/internal/model"
)

func DefaultState() model.State {
	return model.State{Routines: DefaultRoutines()}
}

func DefaultRoutines() []model.Routine {
	stretch := model.SpanOf(0, 10, 0, 0)
	read := model.SpanOf(0, 30, 0, 0)
	return []model.Routine{
		{ID: uuid.NewString(), Name: "Morning stretch", Duration: &stretch, Reminder: &model.TimeOfDay{Hour: 7, Minute: 30}},
		{ID: uuid.NewString(), Name: "Read", Duration: &read},
		{ID: uuid.NewString(), Name: "Plan tomorrow"},
	}
}
