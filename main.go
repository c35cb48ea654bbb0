package main

import (
	"fmt"
	"log"
	"time"

	"clinic-insight-server/config"
	"clinic-insight-server/di"
)

func main() {
	container := di.NewContainer("prod")

	fmt.Println("refreshing reports!")
	if err := container.ReportRefresherService.RefreshReports(time.Now()); err != nil {
		log.Printf("Initial report refresh failed: %v", err)
	}

	fmt.Println("starting periodic job!")
	container.ReportRefresherService.StartPeriodicJob(config.REPORT_REFRESHER_SCHEDULE_MINUTES * time.Minute)

	fmt.Println("starting server!")
	container.ClinicInsightServer.Start()
}
