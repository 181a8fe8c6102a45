// Package serialization stores axle matrices in the .axm binary format.
//
//	Format Structure (little endian):
//	  0x00 [4 bytes: Magic "AXLM"]
//	  0x04 [2 bytes: Version (uint16)]
//	  0x06 [2 bytes: Scalar type (uint16, 0 = float32, 1 = float64)]
//	  0x08 [8 bytes: Rows (uint64)]
//	  0x10 [8 bytes: Cols (uint64)]
//	  0x18 [8 bytes: Flags (uint64, reserved, zero)]
//	  0x20 [32 bytes: SHA-256 of the data section]
//	  0x40 [Data: rows*cols elements, row-major]
//
// Files are written and read through memory maps.
//
// Example usage:
//
//	m := matrix.Identity[float64](3)
//	if err := serialization.Write("eye.axm", m); err != nil {
//	    log.Fatal(err)
//	}
//
//	loaded, err := serialization.Read[float64]("eye.axm")
//	if err != nil {
//	    log.Fatal(err)
//	}
package serialization
