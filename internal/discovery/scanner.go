// Package discovery locates Divoom Pixoo devices on the local network by
// scanning reachable IPv4 subnets and probing the device HTTP port.
package discovery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Device is a discovered Pixoo display.
type Device struct {
	Name string
	IP   string
}

// Scanner probes local subnets for Pixoo devices.
type Scanner struct {
	port    int
	timeout time.Duration
	logger  *slog.Logger
}

// NewScanner creates a scanner probing the given device port. A zero
// timeout defaults to two seconds per host.
func NewScanner(port int, timeout time.Duration, logger *slog.Logger) *Scanner {
	if port <= 0 {
		port = 80
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{port: port, timeout: timeout, logger: logger}
}

// Scan walks every up, non-loopback IPv4 interface and probes its /24 for
// Pixoo devices. Results are deduplicated by IP.
func (s *Scanner) Scan(ctx context.Context) ([]Device, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to get network interfaces: %w", err)
	}

	seen := make(map[string]bool)
	var devices []Device

	for _, iface := range interfaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}

		addresses, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addresses {
			ipNet, ok := addr.(*net.IPNet)
			if !ok || ipNet.IP.To4() == nil {
				continue
			}
			if ipNet.IP.IsLoopback() || ipNet.IP.IsLinkLocalUnicast() {
				continue
			}

			s.logger.Debug("scanning subnet", "interface", iface.Name, "network", ipNet.String())
			found, err := s.scanRange(ctx, ipNet)
			if err != nil {
				return devices, err
			}
			for _, d := range found {
				if !seen[d.IP] {
					seen[d.IP] = true
					devices = append(devices, d)
				}
			}
		}
	}

	return devices, nil
}

func (s *Scanner) scanRange(ctx context.Context, ipNet *net.IPNet) ([]Device, error) {
	network := ipNet.IP.Mask(ipNet.Mask).To4()
	if network == nil {
		return nil, nil
	}

	resultChan := make(chan Device, 254)
	probes := 0

	for i := 1; i < 255; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		ip := make(net.IP, 4)
		copy(ip, network)
		ip[3] = byte(i)

		probes++
		go s.probe(ctx, ip.String(), resultChan)
	}

	var devices []Device
	deadline := time.After(s.timeout + 5*time.Second)
	for i := 0; i < probes; i++ {
		select {
		case d := <-resultChan:
			if d.IP != "" {
				s.logger.Info("found device", "name", d.Name, "ip", d.IP)
				devices = append(devices, d)
			}
		case <-deadline:
			return devices, nil
		case <-ctx.Done():
			return devices, ctx.Err()
		}
	}
	return devices, nil
}

// probe checks a single host: the device port must accept a TCP connection
// and the HTTP root must identify as a Pixoo or Divoom device.
func (s *Scanner) probe(ctx context.Context, ip string, results chan<- Device) {
	address := net.JoinHostPort(ip, strconv.Itoa(s.port))
	conn, err := net.DialTimeout("tcp", address, s.timeout)
	if err != nil {
		results <- Device{}
		return
	}
	conn.Close()

	if !s.identify(ctx, ip) {
		results <- Device{}
		return
	}
	results <- Device{Name: "Pixoo-" + ip, IP: ip}
}

func (s *Scanner) identify(ctx context.Context, ip string) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	url := fmt.Sprintf("http://%s/", net.JoinHostPort(ip, strconv.Itoa(s.port)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	text := strings.ToLower(resp.Header.Get("Server") + " " + string(body))
	return strings.Contains(text, "pixoo") || strings.Contains(text, "divoom")
}
