package handlers

import (
	"bytes"
	"catalog/database"
	"catalog/service"
	"catalog/version"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck health endpoint
func HealthCheck(c *gin.Context) {
	// Check database connectivity
	sqlDB, err := database.DB.DB()
	dbHealthy := true
	if err != nil {
		dbHealthy = false
	} else {
		if err := sqlDB.Ping(); err != nil {
			dbHealthy = false
		}
	}

	health := gin.H{
		"status":     "healthy",
		"timestamp":  time.Now().Unix(),
		"db_healthy": dbHealthy,
		"version":    version.GetVersion(),
	}

	if !dbHealthy {
		health["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}

	c.JSON(http.StatusOK, health)
}

// GetMetrics gathers system metrics
func GetMetrics(c *gin.Context) {
	itemCount, _ := service.GlobalServices.Item.Count()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	metrics := gin.H{
		"timestamp": time.Now().Unix(),
		"catalog": gin.H{
			"items":   itemCount,
			"uploads": UploadsTotal(),
		},
		"sqlite": gin.H{
			"up":            database.SQLiteUp(c.Request.Context()),
			"busy_errors":   database.SQLiteBusyErrorsTotal(),
			"locked_errors": database.SQLiteLockedErrorsTotal(),
		},
		"system": gin.H{
			"goroutines":   runtime.NumGoroutine(),
			"memory_alloc": mem.Alloc,
			"memory_total": mem.TotalAlloc,
			"memory_sys":   mem.Sys,
			"gc_runs":      mem.NumGC,
		},
	}

	c.JSON(http.StatusOK, metrics)
}

func promLabelEscape(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// GetPrometheusMetrics writes Prometheus-formatted metrics to the HTTP
// response for scraping: build info, SQLite connectivity and error
// counters, catalog item and upload totals, goroutine and memory stats.
func GetPrometheusMetrics(c *gin.Context) {
	itemCount, _ := service.GlobalServices.Item.Count()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	var buf bytes.Buffer

	buf.WriteString("# HELP catalog_build_info Build information.\n")
	buf.WriteString("# TYPE catalog_build_info gauge\n")
	fmt.Fprintf(
		&buf,
		"catalog_build_info{version=\"%s\",commit=\"%s\",build_time=\"%s\"} 1\n",
		promLabelEscape(version.Version),
		promLabelEscape(version.CommitHash),
		promLabelEscape(version.BuildTime),
	)

	buf.WriteString("# HELP catalog_sqlite_up SQLite connectivity (1=up, 0=down).\n")
	buf.WriteString("# TYPE catalog_sqlite_up gauge\n")
	if database.SQLiteUp(c.Request.Context()) {
		buf.WriteString("catalog_sqlite_up 1\n")
	} else {
		buf.WriteString("catalog_sqlite_up 0\n")
	}

	buf.WriteString("# HELP catalog_sqlite_busy_errors_total Total SQLite busy errors observed.\n")
	buf.WriteString("# TYPE catalog_sqlite_busy_errors_total counter\n")
	fmt.Fprintf(&buf, "catalog_sqlite_busy_errors_total %d\n", database.SQLiteBusyErrorsTotal())

	buf.WriteString("# HELP catalog_sqlite_locked_errors_total Total SQLite locked errors observed.\n")
	buf.WriteString("# TYPE catalog_sqlite_locked_errors_total counter\n")
	fmt.Fprintf(&buf, "catalog_sqlite_locked_errors_total %d\n", database.SQLiteLockedErrorsTotal())

	buf.WriteString("# HELP catalog_items_total Number of catalog items stored.\n")
	buf.WriteString("# TYPE catalog_items_total gauge\n")
	fmt.Fprintf(&buf, "catalog_items_total %d\n", itemCount)

	buf.WriteString("# HELP catalog_uploads_total Successful image uploads since startup.\n")
	buf.WriteString("# TYPE catalog_uploads_total counter\n")
	fmt.Fprintf(&buf, "catalog_uploads_total %d\n", UploadsTotal())

	buf.WriteString("# HELP catalog_go_goroutines Number of goroutines.\n")
	buf.WriteString("# TYPE catalog_go_goroutines gauge\n")
	fmt.Fprintf(&buf, "catalog_go_goroutines %d\n", runtime.NumGoroutine())

	buf.WriteString("# HELP catalog_memory_alloc_bytes Bytes of allocated heap objects.\n")
	buf.WriteString("# TYPE catalog_memory_alloc_bytes gauge\n")
	fmt.Fprintf(&buf, "catalog_memory_alloc_bytes %d\n", mem.Alloc)

	buf.WriteString("# HELP catalog_memory_sys_bytes Bytes obtained from the OS.\n")
	buf.WriteString("# TYPE catalog_memory_sys_bytes gauge\n")
	fmt.Fprintf(&buf, "catalog_memory_sys_bytes %d\n", mem.Sys)

	buf.WriteString("# HELP catalog_gc_runs_total Number of completed GC cycles.\n")
	buf.WriteString("# TYPE catalog_gc_runs_total counter\n")
	fmt.Fprintf(&buf, "catalog_gc_runs_total %d\n", mem.NumGC)

	c.Data(http.StatusOK, "text/plain; version=0.0.4; charset=utf-8", buf.Bytes())
}
