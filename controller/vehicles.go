package controller

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tkops/hcr2_manager/db"
	"github.com/tkops/hcr2_manager/model"
)

func (c *controller) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return c.db.ListVehicles(ctx)
}

func (c *controller) AddVehicle(ctx context.Context, name, shortname string) (*model.Vehicle, error) {
	name = strings.TrimSpace(name)
	shortname = strings.TrimSpace(shortname)
	if name == "" || shortname == "" {
		return nil, fmt.Errorf("vehicle name and shortname must not be empty")
	}

	v := &model.Vehicle{Name: name, Shortname: shortname}
	id, err := c.db.InsertVehicle(ctx, v)
	if err != nil {
		return nil, err
	}
	v.ID = id
	return v, nil
}

func (c *controller) EditVehicle(ctx context.Context, v *model.Vehicle) error {
	if strings.TrimSpace(v.Name) == "" || strings.TrimSpace(v.Shortname) == "" {
		return fmt.Errorf("vehicle name and shortname must not be empty")
	}
	return c.db.UpdateVehicle(ctx, v)
}

func (c *controller) DeleteVehicle(ctx context.Context, id int32) error {
	return c.db.DeleteVehicle(ctx, id)
}

// ImportVehicles reads name,shortname CSV rows and inserts the ones not
// already present. Returns the number of vehicles added.
func (c *controller) ImportVehicles(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("error reading vehicle CSV header: %v", err)
	}
	nameIdx, shortIdx := -1, -1
	for i, h := range header {
		switch h {
		case "name":
			nameIdx = i
		case "shortname":
			shortIdx = i
		}
	}
	if nameIdx == -1 || shortIdx == -1 {
		return 0, fmt.Errorf("error finding required columns; name: %d, shortname: %d", nameIdx, shortIdx)
	}

	added := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return added, fmt.Errorf("error reading vehicle CSV row: %v", err)
		}
		if _, err := c.AddVehicle(ctx, record[nameIdx], record[shortIdx]); err != nil {
			// Re-imports of an existing list are expected to be no-ops.
			if errors.Is(err, db.ErrDuplicate) {
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}

func (c *controller) ExportVehicles(ctx context.Context, w io.Writer) error {
	vehicles, err := c.db.ListVehicles(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"name", "shortname"}); err != nil {
		return err
	}
	for _, v := range vehicles {
		if err := writer.Write([]string{v.Name, v.Shortname}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func (c *controller) DropVehicles(ctx context.Context) error {
	return c.db.DropVehicles(ctx)
}
