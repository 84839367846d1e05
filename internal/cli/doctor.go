package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/minhtpham/mealgrid/internal/constants"
	"github.com/minhtpham/mealgrid/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: server reachable
	if err := checkServerReachable(ctx); err != nil {
		fmt.Printf("⚠ Server reachable: WARNING\n")
		fmt.Printf("   %v\n", err)
		fmt.Printf("   (planner degrades to cached state while offline)\n")
	} else {
		fmt.Printf("✓ Server reachable: OK\n")
	}

	// Check 2: cache readable
	cacheOK := true
	if err := checkCacheReadable(ctx); err != nil {
		fmt.Printf("❌ Cache readable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		cacheOK = false
	} else {
		fmt.Printf("✓ Cache readable: OK\n")
	}

	// Check 3: journal backlog (warning only)
	if cacheOK {
		if n, err := checkJournalBacklog(ctx); err != nil {
			fmt.Printf("❌ Pending saves: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else if n > 0 {
			fmt.Printf("⚠ Pending saves: %d queued - run 'mealgrid sync'\n", n)
		} else {
			fmt.Printf("✓ Pending saves: none\n")
		}
	} else {
		fmt.Printf("⊘ Pending saves: SKIPPED (cache not readable)\n")
	}

	// Check 4: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	// Check 5: duplicate running instance (warning only)
	if n, err := checkDuplicateInstances(); err != nil {
		fmt.Printf("⊘ Duplicate instances: SKIPPED (%v)\n", err)
	} else if n > 1 {
		fmt.Printf("⚠ Duplicate instances: %d mealgrid processes running\n", n)
	} else {
		fmt.Printf("✓ Duplicate instances: none\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkServerReachable(ctx *Context) error {
	checkCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ctx.Client.Ping(checkCtx); err != nil {
		return fmt.Errorf("cannot reach %s: %w", ctx.Client.BaseURL(), err)
	}
	return nil
}

func checkCacheReadable(ctx *Context) error {
	if err := ctx.Cache.Load(); err != nil {
		return err
	}
	sqliteStore, ok := ctx.Cache.(*storage.SQLiteStore)
	if !ok {
		return nil
	}
	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("cache connection is nil")
	}
	var result int
	if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("failed to query cache: %w", err)
	}
	return nil
}

func checkJournalBacklog(ctx *Context) (int, error) {
	pending, err := ctx.Cache.GetPendingSaves()
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkDuplicateInstances() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}
	self := os.Getpid()
	count := 1
	for _, p := range procs {
		if p.Pid() != self && p.Executable() == constants.AppName {
			count++
		}
	}
	return count, nil
}
