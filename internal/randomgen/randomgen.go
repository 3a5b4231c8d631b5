// Package randomgen produces random but valid contact data for tests and benchmarks.
package randomgen

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

var firstNames = []string{
	"Adam", "Anna", "Berta", "Carla", "David", "Dirk", "Erika", "Felix", "Hana", "Jakub",
	"Jana", "Karel", "Lenka", "Marek", "Pavla", "Petr", "Rudi", "Tereza", "Tomas", "Zuzana",
}

var lastNames = []string{
	"Novak", "Svoboda", "Dvorak", "Cerny", "Prochazka", "Kucera", "Vesely", "Horak", "Nemec",
	"Pokorny", "Mustermann", "Krummacker", "Schmidt", "Weber", "Wagner", "Becker", "Hoffmann",
}

var streets = []string{
	"Hauptstrasse", "Vinohradska", "Karlova", "Bahnhofstrasse", "Narodni", "Lindenweg",
}

var cities = []string{"Praha", "Brno", "Berlin", "Dresden", "Wien", "Plzen"}

// PickFirstName returns a random first name.
func PickFirstName() string {
	return firstNames[rand.IntN(len(firstNames))]
}

// PickLastName returns a random last name.
func PickLastName() string {
	return lastNames[rand.IntN(len(lastNames))]
}

// Name returns a random full name.
func Name() string {
	return PickFirstName() + " " + PickLastName()
}

// Phone returns a random phone number with a leading '+' and 12 digits. Collisions are possible
// but unlikely.
func Phone() string {
	var b strings.Builder
	b.WriteString("+420")
	for i := 0; i < 9; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}

// Email returns an address derived from the given name.
func Email(name string) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return fmt.Sprintf("%s%d@example.com", local, rand.IntN(1000))
}

// Address returns a random postal address.
func Address() string {
	return fmt.Sprintf("%s %d, %s",
		streets[rand.IntN(len(streets))], 1+rand.IntN(200), cities[rand.IntN(len(cities))])
}
