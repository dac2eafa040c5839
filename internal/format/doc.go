// Package format renders numbers for the calculator display.
//
// The display contract comes from a browser calculator, so the rules follow
// ECMAScript number printing: Canonical mirrors Number.prototype.toString and
// the rounding helpers mirror toFixed/toExponential, including rounding exact
// halfway cases away from zero. Number layers the width budget on top:
//
//	format.Number(1234567890)  // "1234567890"
//	format.Number(12345678901) // "1.2346e+10"
//	format.Number(1.0 / 3)     // "0.333333333"
//	format.Number(1.5e-7)      // "1.5000e-7"
//
// Number is idempotent: parsing its output and formatting again yields the
// same string.
package format
