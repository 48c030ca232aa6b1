package detective

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

// LoadDB appends landmarks from a sqlite file to the reference set.
// Expected schema: landmarks(name, lat, lng, type, region). Called once
// at startup, before any Investigate call; the set is read-only after.
func (d *Detective) LoadDB(path string) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("open landmark db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name, lat, lng, type, region FROM landmarks`)
	if err != nil {
		return fmt.Errorf("query landmarks: %w", err)
	}
	defer rows.Close()

	byRegion := make(map[string][]Landmark)
	count := 0
	for rows.Next() {
		var lm Landmark
		var region string
		if err := rows.Scan(&lm.Name, &lm.Lat, &lm.Lng, &lm.Type, &region); err != nil {
			return fmt.Errorf("scan landmark: %w", err)
		}
		byRegion[region] = append(byRegion[region], lm)
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	d.addLandmarks(byRegion)

	log.Printf("[detective] loaded %d landmarks from %s", count, path)
	return nil
}

// addLandmarks merges loaded landmarks into this instance's reference
// set, matching on region name. The constructor copied the region and
// landmark slices, so the appends stay local to this Detective.
func (d *Detective) addLandmarks(byRegion map[string][]Landmark) {
	for region, landmarks := range byRegion {
		merged := false
		for i := range d.regions {
			if d.regions[i].Name == region {
				d.regions[i].Landmarks = append(d.regions[i].Landmarks, landmarks...)
				merged = true
				break
			}
		}
		if !merged {
			d.regions = append(d.regions, Region{Name: region, Landmarks: landmarks})
		}
	}
}
