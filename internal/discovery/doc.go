// Package discovery finds and advertises shared rose cards on the local
// network over multicast DNS.
//
// A card served with "roseday share" registers an instance of
// "_roseday._tcp" named "Rose for {name}" with the TXT records name=,
// style= and path=. Scanner browses for those instances:
//
//	roses, err := discovery.NewScanner().Scan(ctx)
//	for _, r := range roses {
//	    fmt.Println(r.Instance, r.URL())
//	}
//
// mDNS needs multicast on the interface and UDP port 5353 open; devices
// must share a network segment.
package discovery
