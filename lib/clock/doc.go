// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source.
//
// Production code accepts a [Clock] instead of calling time.Now
// directly. [Real] reads the system clock; [Fake] returns a clock that
// stands still until the test moves it with [FakeClock.Advance] or
// [FakeClock.Set].
//
// The token issuer in lib/appkey stamps expiry times from a Clock, so
// tests can assert exact "exp" claims:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	issuer := appkey.NewIssuer(fake)
//	token, _ := issuer.Issue(keys)
//	// exp == fake.Now().Unix() + 300
package clock
