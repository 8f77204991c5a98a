package storage

import (
	"context"

	"github.com/tidwall/sjson"

	"github.com/sw33tLie/pricebot/pkg/catalog"
)

// Source serves the stored catalog through the same JSON shape as a
// catalog file, so it goes through the regular validation on load.
type Source struct {
	Path string
}

func (s Source) Name() string { return "sqlite://" + s.Path }

// Read never creates the store; a missing or foreign file fails the load.
func (s Source) Read(ctx context.Context) ([]byte, error) {
	db, err := OpenReadOnly(s.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	records, err := db.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return EncodeRecords(records)
}

// EncodeRecords writes records as a catalog JSON array.
func EncodeRecords(records []catalog.Record) ([]byte, error) {
	out := []byte("[]")
	for _, r := range records {
		obj := []byte("{}")
		var err error
		fields := []struct{ key, val string }{
			{"name", r.Name},
			{"price", r.Price},
			{"sales", r.Sales},
			{"lastUpdate", r.LastUpdate},
			{"category", r.Category},
			{"icon", r.Icon},
		}
		for _, f := range fields {
			if f.key == "icon" && f.val == "" {
				continue
			}
			if obj, err = sjson.SetBytes(obj, f.key, f.val); err != nil {
				return nil, err
			}
		}
		if out, err = sjson.SetRawBytes(out, "-1", obj); err != nil {
			return nil, err
		}
	}
	return out, nil
}
