package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AmountPlaces кол-во знаков после запятой для денежных сумм.
const AmountPlaces = 2

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

type CartLine struct {
	FoodID uuid.UUID
	Count  int
}

// Cart корзина после отбрасывания невалидных позиций. Повторная позиция с тем же foodId перезаписывает
// количество предыдущей, порядок строк определяется первым появлением.
type Cart struct {
	lines []CartLine
	index map[uuid.UUID]int
}

func NewCart() *Cart {
	return &Cart{index: make(map[uuid.UUID]int)}
}

// Put добавляет позицию или перезаписывает количество уже существующей.
func (c *Cart) Put(foodID uuid.UUID, count int) {
	if i, ok := c.index[foodID]; ok {
		c.lines[i].Count = count
		return
	}
	c.index[foodID] = len(c.lines)
	c.lines = append(c.lines, CartLine{FoodID: foodID, Count: count})
}

func (c *Cart) Lines() []CartLine {
	return c.lines
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) FoodIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.lines))
	for i, l := range c.lines {
		ids[i] = l.FoodID
	}
	return ids
}

type rawCartLine struct {
	FoodID json.RawMessage `json:"foodId"`
	Count  json.RawMessage `json:"count"`
}

// ParseCart разбирает произвольный JSON корзины. Если raw не является массивом, возвращает
// ErrInvalidCart. Невалидные элементы молча отбрасываются.
func ParseCart(raw json.RawMessage) (*Cart, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrInvalidCart
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, ErrInvalidCart
	}

	cart := NewCart()
	for _, entry := range entries {
		if line, ok := parseCartLine(entry); ok {
			cart.Put(line.FoodID, line.Count)
		}
	}
	return cart, nil
}

func parseCartLine(entry json.RawMessage) (CartLine, bool) {
	trimmed := bytes.TrimSpace(entry)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return CartLine{}, false
	}
	var raw rawCartLine
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return CartLine{}, false
	}
	if raw.FoodID == nil || raw.Count == nil {
		return CartLine{}, false
	}

	var foodIDStr string
	if err := json.Unmarshal(raw.FoodID, &foodIDStr); err != nil {
		return CartLine{}, false
	}
	foodID, ok := ParseID(foodIDStr)
	if !ok {
		return CartLine{}, false
	}

	count, ok := parseCount(raw.Count)
	if !ok {
		return CartLine{}, false
	}
	return CartLine{FoodID: foodID, Count: count}, true
}

// parseCount принимает целое число >= 1 либо строку из цифр с таким же значением.
func parseCount(raw json.RawMessage) (int, bool) {
	n, ok := ParseWhole(raw, 1)
	return int(n), ok
}

// ParseWhole принимает JSON целое число >= minimum либо строку из цифр с таким же значением.
// Значения больше math.MaxInt32 отбрасываются.
func ParseWhole(raw json.RawMessage, minimum int64) (int64, bool) {
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if !digitsOnly.MatchString(str) {
			return 0, false
		}
		n, convErr := strconv.ParseInt(str, 10, 32)
		if convErr != nil || n < minimum {
			return 0, false
		}
		return n, true
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, false
	}
	d, err := decimal.NewFromString(num.String())
	if err != nil || !d.IsInteger() || d.LessThan(decimal.NewFromInt(minimum)) ||
		d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) {
		return 0, false
	}
	return d.IntPart(), true
}

// PriceCart формирует черновик платежа по текущим данным каталога. Позиции без соответствующего
// блюда в foods пропускаются. Сумма округляется до AmountPlaces знаков.
func PriceCart(cart *Cart, foods []FoodChain, userID uuid.UUID) Payment {
	byID := make(map[uuid.UUID]*FoodChain, len(foods))
	for i := range foods {
		byID[foods[i].ID] = &foods[i]
	}

	payment := Payment{
		Status: PaymentStatusPending,
		Amount: decimal.Zero,
		UserID: userID,
		Lines:  make([]OrderLine, 0, cart.Len()),
	}
	for _, line := range cart.Lines() {
		food, ok := byID[line.FoodID]
		if !ok {
			continue
		}
		payment.Lines = append(payment.Lines, OrderLine{
			FoodName:          food.Name,
			FoodPrice:         food.Price,
			Count:             line.Count,
			Menu:              food.MenuName,
			RestaurantName:    food.RestaurantName,
			RestaurantAddress: food.RestaurantAddress,
			RestaurantCountry: food.CountryName,
		})
		payment.Total += line.Count
		payment.Amount = payment.Amount.Add(food.Price.Mul(decimal.NewFromInt(int64(line.Count))))
	}
	payment.Amount = payment.Amount.Round(AmountPlaces)
	return payment
}
