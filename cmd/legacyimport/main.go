package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"logmed-backend/internal/config"
	"logmed-backend/internal/database"
	"logmed-backend/internal/legacy"
	"logmed-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"
)

type tally struct {
	inserted, updated, failed int
}

func (t tally) String() string {
	return fmt.Sprintf("%d inserted, %d updated, %d failed", t.inserted, t.updated, t.failed)
}

func (t *tally) add(inserted bool, err error, what string) {
	switch {
	case err != nil:
		t.failed++
		log.Printf("❌ %s: %v", what, err)
	case inserted:
		t.inserted++
	default:
		t.updated++
	}
}

func main() {
	file := flag.String("file", "", "legacy .xlsx workbook")
	layoutPath := flag.String("layout", "", "optional YAML layout overriding sheet names and columns")
	dryRun := flag.Bool("dry-run", false, "parse and print counts without writing")
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	layout := legacy.DefaultLayout()
	if *layoutPath != "" {
		var err error
		if layout, err = legacy.LoadLayout(*layoutPath); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}

	wb, err := excelize.OpenFile(*file)
	if err != nil {
		log.Fatalf("❌ Failed to open workbook: %v", err)
	}
	defer wb.Close()

	routes, err := legacy.ReadRoutes(wb, layout.Routes)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	cities, err := legacy.ReadCities(wb, layout.Cities)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	drivers, err := legacy.ReadDrivers(wb, layout.Drivers)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Printf("📄 Parsed %d routes, %d cities, %d drivers", len(routes), len(cities), len(drivers))

	if *dryRun {
		log.Println("Dry run, nothing written")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	importAll(db, routes, cities, drivers)
}

func importAll(db *sqlx.DB, routes []models.Route, cities []models.City, drivers []models.Driver) {
	var r, c, d tally
	for _, route := range routes {
		inserted, err := database.UpsertRoute(db, route)
		r.add(inserted, err, "route "+route.ID)
	}
	for _, city := range cities {
		inserted, err := database.UpsertCityByName(db, city)
		c.add(inserted, err, "city "+city.Name)
	}
	for _, driver := range drivers {
		inserted, err := database.UpsertDriverByName(db, driver)
		d.add(inserted, err, "driver "+driver.Name)
	}

	fmt.Println("\n============================================================")
	fmt.Println("LEGACY IMPORT SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Routes:  %s\n", r)
	fmt.Printf("Cities:  %s\n", c)
	fmt.Printf("Drivers: %s\n", d)
	fmt.Println("============================================================")
}
