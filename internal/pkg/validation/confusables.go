package validation

import "unicode"

// Homograph detection: a name is dangerous when it mixes Unicode
// scripts and at least one of its characters appears in the Unicode
// visually-confusable character data. "paypal" spelled with a Cyrillic
// "а" passes an exact-match reserved check but is indistinguishable on
// screen; such names are refused outright.

// confusableRunes holds the cross-script characters most commonly used
// in homograph attacks, drawn from the Unicode confusables data for the
// Latin, Greek and Cyrillic scripts.
var confusableRunes = map[rune]struct{}{}

func init() {
	for _, r := range "" +
		// Cyrillic letters confusable with Latin
		"АВЕЗКМНОРСТУХЬавезнорсухьіјѕԛԝ" +
		"ЁЙйёһҮүҒғ" +
		// Greek letters confusable with Latin
		"ΑΒΕΖΗΙΚΜΝΟΡΤΥΧνοικρτυχαβγε" +
		// Misc lookalikes
		"ℂℇℊℋℌℍℎℐℑℒℓℕℙℚℛℜℝℤΩℨKÅℬℭℯℰℱℳℴ" {
		confusableRunes[r] = struct{}{}
	}
}

// script tables we distinguish; confusable pairs overwhelmingly cross
// these three.
var scriptTables = []*unicode.RangeTable{
	unicode.Latin,
	unicode.Greek,
	unicode.Cyrillic,
}

// IsDangerous reports whether value is mixed-script and contains at
// least one visually-confusable character.
func IsDangerous(value string) bool {
	ascii := true
	for _, r := range value {
		if r > 127 {
			ascii = false
			break
		}
	}
	if ascii {
		return false
	}

	seen := make(map[int]struct{})
	hasConfusable := false
	for _, r := range value {
		if !unicode.IsLetter(r) {
			continue
		}
		for i, table := range scriptTables {
			if unicode.Is(table, r) {
				seen[i] = struct{}{}
				break
			}
		}
		if _, ok := confusableRunes[r]; ok {
			hasConfusable = true
		}
	}
	return len(seen) > 1 && hasConfusable
}

// IsDangerousEmail reports whether an email address is a likely
// homograph attack. The local part and the domain are judged
// independently: each on its own must not be dangerous.
func IsDangerousEmail(localPart, domain string) bool {
	return IsDangerous(localPart) || IsDangerous(domain)
}
