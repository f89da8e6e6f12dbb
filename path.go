package cdif

import "fmt"

// A Path is a storage location within an account.
type Path struct {
	// Domain is one of "storage", "private" or "public".
	Domain     string
	Identifier string
}

func (p Path) String() string {
	return fmt.Sprintf("/%s/%s", p.Domain, p.Identifier)
}

func (p Path) validate() error {
	if !pathDomains.Has(p.Domain) {
		return invalid(KindPath, p, "unknown domain %q", p.Domain)
	}
	if p.Identifier == "" {
		return invalid(KindPath, p, "empty identifier")
	}
	return nil
}

// A Capability is a reference to a path in another account, with the
// type it may be borrowed as.
type Capability struct {
	Address    Address
	Path       Path
	BorrowType string
}

func (c Capability) String() string {
	return fmt.Sprintf("Capability<%s>(%s%s)", c.BorrowType, c.Address, c.Path)
}
