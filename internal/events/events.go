package events

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

const (
	UserCreated     = "user.created"
	UserDeleted     = "user.deleted"
	ExerciseCreated = "exercise.created"
	ExerciseUpdated = "exercise.updated"
	ExerciseDeleted = "exercise.deleted"
)

// Event describes a change to a user or exercise document.
type Event struct {
	Type     string
	ID       string
	Username string
	Time     time.Time
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop drops every event. It is used when no event sink is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error { return nil }

func (e Event) Encode(enc *jx.Encoder) {
	enc.ObjStart()
	enc.FieldStart("type")
	enc.Str(e.Type)
	enc.FieldStart("id")
	enc.Str(e.ID)
	if e.Username != "" {
		enc.FieldStart("username")
		enc.Str(e.Username)
	}
	enc.FieldStart("time")
	enc.Str(e.Time.UTC().Format(time.RFC3339Nano))
	enc.ObjEnd()
}

func (e Event) MarshalJSON() ([]byte, error) {
	var enc jx.Encoder
	e.Encode(&enc)
	return enc.Bytes(), nil
}

func (e *Event) Decode(d *jx.Decoder) error {
	return d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		switch string(key) {
		case "type":
			v, err := d.Str()
			e.Type = v
			return err
		case "id":
			v, err := d.Str()
			e.ID = v
			return err
		case "username":
			v, err := d.Str()
			e.Username = v
			return err
		case "time":
			v, err := d.Str()
			if err != nil {
				return err
			}
			t, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return errors.Wrap(err, "parse time")
			}
			e.Time = t
			return nil
		default:
			return d.Skip()
		}
	})
}

func (e *Event) UnmarshalJSON(b []byte) error {
	return e.Decode(jx.DecodeBytes(b))
}
