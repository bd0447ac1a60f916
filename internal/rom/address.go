package rom

import "fmt"

// Region identifies which part of the address space an offset falls in.
type Region uint8

const (
	// RegionHeader covers the header bytes.
	RegionHeader Region = iota

	// RegionPrimary covers the program banks.
	RegionPrimary

	// RegionSecondary covers the tile banks and anything past them.
	RegionSecondary
)

// String returns the string representation of the region.
func (r Region) String() string {
	switch r {
	case RegionHeader:
		return "header"
	case RegionPrimary:
		return "primary"
	case RegionSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// Address is a bank-relative location.
// Local is the CPU-visible address for primary banks and the bank-local
// offset for secondary banks.
type Address struct {
	Region Region
	Bank   int
	Local  int
}

// String formats the address as BB:LLLL.
func (a Address) String() string {
	return fmt.Sprintf("%02X:%04X", a.Bank&0xFF, a.Local&0xFFFF)
}

// Primary banks are mapped at 0x8000, except the last one which sits at
// 0xC000 so that the reset vectors land where the CPU expects them.
const (
	primaryBase     = 0x8000
	primaryLastBase = 0xC000
)

// Resolve translates a linear offset into a bank-relative address.
// Offset 0 and the remaining header bytes resolve to RegionHeader.
// No bounds checking against the image length is performed.
func (l Layout) Resolve(offset int) Address {
	if offset <= 0 {
		return Address{Region: RegionHeader}
	}
	r := offset - l.header.FirstLineLength
	if r < 0 {
		return Address{Region: RegionHeader, Local: offset}
	}
	if r < l.primarySize() {
		bank := r / PrimaryBankSize
		base := primaryBase
		if bank+1 == l.header.PrimaryBanks {
			base = primaryLastBase
		}
		return Address{Region: RegionPrimary, Bank: bank, Local: r%PrimaryBankSize + base}
	}
	r -= l.primarySize()
	return Address{Region: RegionSecondary, Bank: r / SecondaryBankSize, Local: r % SecondaryBankSize}
}

// Offset reconstructs the linear offset of an address produced by Resolve.
func (l Layout) Offset(a Address) int {
	switch a.Region {
	case RegionPrimary:
		base := primaryBase
		if a.Bank+1 == l.header.PrimaryBanks {
			base = primaryLastBase
		}
		return l.header.FirstLineLength + a.Bank*PrimaryBankSize + a.Local - base
	case RegionSecondary:
		return l.SecondaryStart() + a.Bank*SecondaryBankSize + a.Local
	default:
		return a.Local
	}
}
