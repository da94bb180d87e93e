// Package catalog содержит фиксированный список районов Мумбаи,
// из которого при старте создаются регионы.
package catalog

import (
	"strings"

	"github.com/shenikar/city_safety_map/internal/models"
)

// DefaultBaseScore используется для районов, которых нет в каталоге
const DefaultBaseScore = 70

// Location - запись каталога: название, координаты центра и базовая оценка
type Location struct {
	Name      string
	Latitude  float64
	Longitude float64
	BaseScore int
}

var mumbai = []Location{
	{"Andheri West", 19.1136, 72.8697, 75},
	{"Andheri East", 19.1197, 72.8694, 72},
	{"Bandra West", 19.0596, 72.8295, 80},
	{"Bandra East", 19.0544, 72.8420, 68},
	{"Borivali West", 19.2403, 72.8565, 65},
	{"Borivali East", 19.2304, 72.8564, 62},
	{"Colaba", 18.9067, 72.8147, 85},
	{"Dadar West", 19.0178, 72.8478, 70},
	{"Dadar East", 19.0189, 72.8489, 66},
	{"Fort", 18.9330, 72.8350, 82},
	{"Goregaon West", 19.1663, 72.8526, 68},
	{"Goregaon East", 19.1549, 72.8639, 64},
	{"Juhu", 19.1075, 72.8263, 78},
	{"Kandivali West", 19.2074, 72.8320, 67},
	{"Kandivali East", 19.2039, 72.8550, 63},
	{"Kurla West", 19.0728, 72.8826, 58},
	{"Kurla East", 19.0653, 72.8935, 55},
	{"Malad West", 19.1864, 72.8411, 65},
	{"Malad East", 19.1858, 72.8489, 61},
	{"Marine Drive", 18.9432, 72.8236, 88},
	{"Mulund West", 19.1722, 72.9565, 72},
	{"Mulund East", 19.1607, 72.9560, 69},
	{"Powai", 19.1176, 72.9060, 76},
	{"Santa Cruz West", 19.0812, 72.8347, 70},
	{"Santa Cruz East", 19.0896, 72.8422, 67},
	{"Thane West", 19.2183, 72.9781, 68},
	{"Versova", 19.1311, 72.8158, 73},
	{"Vile Parle West", 19.1045, 72.8370, 74},
	{"Vile Parle East", 19.0990, 72.8489, 71},
	{"Worli", 19.0176, 72.8170, 79},
}

// Mumbai возвращает копию каталога в фиксированном порядке
func Mumbai() []Location {
	out := make([]Location, len(mumbai))
	copy(out, mumbai)
	return out
}

// BaseScore возвращает базовую оценку района по названию (без учета регистра).
// Для неизвестного названия возвращается DefaultBaseScore.
func BaseScore(name string) int {
	for _, loc := range mumbai {
		if strings.EqualFold(loc.Name, strings.TrimSpace(name)) {
			return loc.BaseScore
		}
	}
	return DefaultBaseScore
}

// CityCentre - центр города, используется, когда место не удалось сопоставить с районом
var CityCentre = models.Coordinate{Lat: 19.0760, Lng: 72.8777}
