// Package art generates random suprematist compositions used as the default
// payload for new artworks.
package art

import (
	"encoding/json"
	"fmt"
	"math/rand"
)

type Shape struct {
	Type   string `json:"type"`
	Color  string `json:"color"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Angle  int    `json:"angle"`
}

var palettes = [][]string{
	{"#E41E26", "#000000", "#1A1A1A", "#FFD100"},
	{"#E41E26", "#000000", "#FFFFFF", "#003366"},
	{"#E41E26", "#FF6B35", "#000000", "#FFD100", "#1A1A1A"},
	{"#003366", "#000000", "#4A90D9", "#1A1A1A", "#708090"},
	{"#E41E26", "#FF6B35", "#FFD100", "#000000"},
}

var titlePrefixes = []string{
	"Супрематическая композиция",
	"Динамические формы",
	"Геометрическая абстракция",
	"Цветовой контраст",
	"Пространственная структура",
}

// randIn returns a random int in [lo, hi].
func randIn(lo, hi int) int {
	return lo + rand.Intn(hi-lo+1)
}

func pick(options []string) string {
	return options[rand.Intn(len(options))]
}

// Generate returns a random composition serialized as shapes JSON.
func Generate() string {
	palette := palettes[rand.Intn(len(palettes))]
	var composition []Shape

	switch pick([]string{"diagonal", "centered", "scattered", "layered", "cross"}) {
	case "diagonal":
		composition = append(composition, Shape{
			Type:   "rotated_rect",
			Color:  palette[0],
			X:      randIn(5, 20),
			Y:      randIn(30, 50),
			Width:  randIn(60, 80),
			Height: randIn(8, 15),
			Angle:  randIn(-45, -25),
		})
		for i := 0; i < randIn(2, 4); i++ {
			composition = append(composition, Shape{
				Type:   pick([]string{"rotated_rect", "rectangle"}),
				Color:  pick(palette),
				X:      randIn(10, 70),
				Y:      randIn(10, 70),
				Width:  randIn(15, 40),
				Height: randIn(5, 15),
				Angle:  randIn(-60, 60),
			})
		}

	case "centered":
		composition = append(composition, Shape{
			Type:   pick([]string{"rectangle", "circle"}),
			Color:  palette[0],
			X:      randIn(25, 35),
			Y:      randIn(20, 35),
			Width:  randIn(30, 45),
			Height: randIn(25, 40),
		})
		for i := 0; i < randIn(3, 6); i++ {
			composition = append(composition, Shape{
				Type:   pick([]string{"rectangle", "circle", "triangle"}),
				Color:  pick(palette[1:]),
				X:      randIn(5, 85),
				Y:      randIn(5, 80),
				Width:  randIn(8, 20),
				Height: randIn(8, 20),
				Angle:  randIn(-30, 30),
			})
		}

	case "scattered":
		for i := 0; i < randIn(5, 9); i++ {
			shapeType := pick([]string{"rectangle", "circle", "triangle", "rotated_rect"})
			size := randIn(10, 30)
			height := size
			if shapeType != "circle" {
				height = randIn(8, 30)
			}
			angle := 0
			if shapeType == "rectangle" || shapeType == "rotated_rect" {
				angle = randIn(-45, 45)
			}
			composition = append(composition, Shape{
				Type:   shapeType,
				Color:  pick(palette),
				X:      randIn(5, 75),
				Y:      randIn(5, 70),
				Width:  size,
				Height: height,
				Angle:  angle,
			})
		}

	case "layered":
		baseX, baseY := randIn(15, 30), randIn(15, 30)
		layers := randIn(3, 5)
		for i := 0; i < layers; i++ {
			offset := i * randIn(8, 15)
			composition = append(composition, Shape{
				Type:   "rectangle",
				Color:  palette[i%len(palette)],
				X:      baseX + offset,
				Y:      baseY + offset/2,
				Width:  randIn(25, 45),
				Height: randIn(20, 35),
			})
		}
		for i := 0; i < randIn(1, 3); i++ {
			composition = append(composition, Shape{
				Type:   "circle",
				Color:  palette[0],
				X:      randIn(50, 80),
				Y:      randIn(10, 60),
				Width:  randIn(10, 20),
				Height: randIn(10, 20),
			})
		}

	default: // cross
		centerX, centerY := randIn(35, 50), randIn(30, 45)
		composition = append(composition, Shape{
			Type:   "rectangle",
			Color:  palette[0],
			X:      5,
			Y:      centerY,
			Width:  90,
			Height: randIn(10, 18),
		})
		composition = append(composition, Shape{
			Type:   "rectangle",
			Color:  pick(palette[1:3]),
			X:      centerX,
			Y:      5,
			Width:  randIn(12, 20),
			Height: 85,
		})
		for i := 0; i < randIn(2, 4); i++ {
			composition = append(composition, Shape{
				Type:   pick([]string{"circle", "rectangle", "triangle"}),
				Color:  pick(palette),
				X:      randIn(5, 80),
				Y:      randIn(5, 75),
				Width:  randIn(8, 18),
				Height: randIn(8, 18),
				Angle:  randIn(-20, 20),
			})
		}
	}

	data, _ := json.Marshal(composition)
	return string(data)
}

// RandomTitle returns a random artwork title.
func RandomTitle() string {
	return fmt.Sprintf("%s №%d", pick(titlePrefixes), randIn(1, 1000))
}
