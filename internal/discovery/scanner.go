// internal/discovery/scanner.go
package discovery

import (
	"context"
	"fmt"
	"net/netip"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ticket-service/internal/model"
	"ticket-service/internal/utils"
)

const (
	DefaultConcurrency = 64
	DefaultMaxHosts    = 1024
)

// Prober checks a single endpoint for a listening printer
type Prober interface {
	Probe(ctx context.Context, host string, port int) model.PrinterStatus
}

// DiscoveredPrinter is an endpoint that accepted a raw-socket connection
type DiscoveredPrinter struct {
	Host      string    `json:"host"`
	Port      int       `json:"port"`
	CheckedAt time.Time `json:"checked_at"`
}

// Config for the network scanner
type Config struct {
	NetworkRanges []string
	Concurrency   int
	MaxHosts      int
}

// ScanResult summarizes one scan
type ScanResult struct {
	Ranges   []string            `json:"ranges"`
	Port     int                 `json:"port"`
	Scanned  int                 `json:"scanned"`
	Printers []DiscoveredPrinter `json:"printers"`
	Duration time.Duration       `json:"duration"`
}

// Scanner finds printers by probing every host address of a network range
type Scanner struct {
	prober Prober
	config Config
	logger *utils.ServiceLogger
}

// NewScanner creates a new network scanner. A nil config uses defaults
// and requires ranges on every Scan call.
func NewScanner(prober Prober, config *Config, logger *zap.Logger) *Scanner {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.MaxHosts <= 0 {
		cfg.MaxHosts = DefaultMaxHosts
	}

	return &Scanner{
		prober: prober,
		config: cfg,
		logger: utils.NewServiceLogger(logger, "printer-scanner"),
	}
}

// Scan probes ranges (or the configured ranges when empty) on port.
// Reachable endpoints are returned in address order.
func (s *Scanner) Scan(ctx context.Context, ranges []string, port int) (*ScanResult, error) {
	if len(ranges) == 0 {
		ranges = s.config.NetworkRanges
	}
	if len(ranges) == 0 {
		return nil, model.NewValidationError("cidr", "is required when no network ranges are configured")
	}
	if port <= 0 {
		port = model.DefaultPrinterPort
	}

	hosts, err := s.expand(ranges)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Starting printer scan",
		zap.Strings("ranges", ranges),
		zap.Int("port", port),
		zap.Int("hosts", len(hosts)),
	)
	startTime := time.Now()

	var (
		mutex sync.Mutex
		found []netip.Addr
		byIP  = make(map[netip.Addr]time.Time)
	)

	var group errgroup.Group
	group.SetLimit(s.config.Concurrency)

	for _, addr := range hosts {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			status := s.prober.Probe(ctx, addr.String(), port)
			if !status.Reachable {
				return nil
			}
			mutex.Lock()
			found = append(found, addr)
			byIP[addr] = status.CheckedAt
			mutex.Unlock()
			return nil
		})
	}
	_ = group.Wait()

	if err := ctx.Err(); err != nil {
		s.logger.Warn("Printer scan cancelled", zap.Error(err))
		return nil, err
	}

	slices.SortFunc(found, func(a, b netip.Addr) int { return a.Compare(b) })

	result := &ScanResult{
		Ranges:   ranges,
		Port:     port,
		Scanned:  len(hosts),
		Printers: make([]DiscoveredPrinter, 0, len(found)),
		Duration: time.Since(startTime),
	}
	for _, addr := range found {
		result.Printers = append(result.Printers, DiscoveredPrinter{
			Host:      addr.String(),
			Port:      port,
			CheckedAt: byIP[addr],
		})
	}

	s.logger.Info("Printer scan completed",
		zap.Int("scanned", result.Scanned),
		zap.Int("printers_found", len(result.Printers)),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// expand turns CIDR ranges into a de-duplicated host list of at most
// MaxHosts addresses
func (s *Scanner) expand(ranges []string) ([]netip.Addr, error) {
	seen := make(map[netip.Addr]struct{})
	var hosts []netip.Addr

	for _, raw := range ranges {
		prefix, err := netip.ParsePrefix(strings.TrimSpace(raw))
		if err != nil {
			return nil, model.NewValidationError("cidr", fmt.Sprintf("%q is not a valid network range", raw))
		}

		addrs, err := hostAddrs(prefix.Masked(), s.config.MaxHosts)
		if err != nil {
			return nil, err
		}
		for _, addr := range addrs {
			if _, dup := seen[addr]; dup {
				continue
			}
			seen[addr] = struct{}{}
			hosts = append(hosts, addr)
		}
	}

	if len(hosts) > s.config.MaxHosts {
		return nil, model.NewValidationError("cidr",
			fmt.Sprintf("%d addresses exceed the scan limit of %d", len(hosts), s.config.MaxHosts))
	}
	return hosts, nil
}

// hostAddrs lists the usable addresses of prefix. IPv4 networks wider than
// /31 skip their network and broadcast addresses.
func hostAddrs(prefix netip.Prefix, limit int) ([]netip.Addr, error) {
	hostBits := prefix.Addr().BitLen() - prefix.Bits()
	if hostBits > 30 || 1<<hostBits > limit+2 {
		return nil, model.NewValidationError("cidr", fmt.Sprintf("%s exceeds the scan limit", prefix))
	}

	var addrs []netip.Addr
	for addr := prefix.Addr(); addr.IsValid() && prefix.Contains(addr); addr = addr.Next() {
		addrs = append(addrs, addr)
	}
	if prefix.Addr().Is4() && hostBits > 1 {
		addrs = addrs[1 : len(addrs)-1]
	}
	if len(addrs) > limit {
		return nil, model.NewValidationError("cidr", fmt.Sprintf("%s exceeds the scan limit", prefix))
	}
	return addrs, nil
}
