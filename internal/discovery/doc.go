// Package discovery locates calculation endpoints on the local network.
//
// Evaluation services advertise themselves over multicast DNS (mDNS) as
// "_calculate._tcp" services. The TXT record may carry the request path
// ("path=/calculate"); it defaults to /calculate.
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	endpoints, err := scanner.Scan(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, ep := range endpoints {
//	    fmt.Println(ep.Instance, ep.URL())
//	}
//
// # Network Requirements
//
// - Requires multicast support on the network interface
// - Services must be on the same local network segment
// - Firewall must allow mDNS (UDP port 5353)
package discovery
