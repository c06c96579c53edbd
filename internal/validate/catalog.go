package validate

import (
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
)

const (
	nameTag    = "min=3,max=128"
	addressTag = "min=3,max=128"
	ratingTag  = "min=0,max=10"
)

func Country(args repoargs.CreateCountry) error {
	c := newChecker()
	countryFields(c, &args.Name, &args.Code, &args.Emoji)
	return c.err()
}

func UpdateCountry(args repoargs.UpdateCountry) error {
	if args.Name == nil && args.Code == nil && args.Emoji == nil {
		return errorf("Body", MsgEmptyUpdateBody)
	}
	c := newChecker()
	countryFields(c, args.Name, args.Code, args.Emoji)
	return c.err()
}

func countryFields(c *checker, name, code, emoji *string) {
	if name != nil {
		c.tag("Name", *name, "required,max=128", MsgCountryName)
	}
	if code != nil {
		c.tag("Code", *code, "len=2", MsgCountryCode)
	}
	if emoji != nil {
		c.tag("Emoji", *emoji, "required,max_bytes=16", MsgCountryEmoji)
	}
}

func Location(args repoargs.CreateLocation) error {
	c := newChecker()
	c.tag("Address", args.Address, addressTag, MsgAddress)
	phone(c, args.Phone)
	return c.err()
}

func UpdateLocation(args repoargs.UpdateLocation) error {
	if args.Address == nil && args.CountryID == nil && args.Phone == nil {
		return errorf("Body", MsgEmptyUpdateBody)
	}
	c := newChecker()
	if args.Address != nil {
		c.tag("Address", *args.Address, addressTag, MsgAddress)
	}
	phone(c, args.Phone)
	return c.err()
}

func phone(c *checker, p *string) {
	if p != nil {
		c.tag("Phone", *p, "required,max=25", MsgPhone)
	}
}

func Restaurant(args repoargs.CreateRestaurant) error {
	c := newChecker()
	c.tag("Name", args.Name, nameTag, MsgName)
	if args.Rating != nil {
		c.tag("Rating", *args.Rating, ratingTag, MsgRating)
	}
	return c.err()
}

func UpdateRestaurant(args repoargs.UpdateRestaurant) error {
	if args.Name == nil && args.Active == nil && args.Rating == nil && args.LocationID == nil {
		return errorf("Body", MsgEmptyUpdateBody)
	}
	c := newChecker()
	if args.Name != nil {
		c.tag("Name", *args.Name, nameTag, MsgName)
	}
	if args.Rating != nil {
		c.tag("Rating", *args.Rating, ratingTag, MsgRating)
	}
	return c.err()
}

func Menu(args repoargs.CreateMenu) error {
	c := newChecker()
	c.tag("Name", args.Name, nameTag, MsgName)
	return c.err()
}

func UpdateMenu(args repoargs.UpdateMenu) error {
	if args.Name == nil && args.Active == nil && args.RestaurantID == nil {
		return errorf("Body", MsgEmptyUpdateBody)
	}
	c := newChecker()
	if args.Name != nil {
		c.tag("Name", *args.Name, nameTag, MsgName)
	}
	return c.err()
}

func Food(args repoargs.CreateFood) error {
	c := newChecker()
	c.tag("Name", args.Name, nameTag, MsgName)
	c.cond("Price", Price(args.Price), MsgPrice)
	return c.err()
}

func UpdateFood(args repoargs.UpdateFood) error {
	if args.Name == nil && args.Active == nil && args.MenuID == nil && args.Price == nil {
		return errorf("Body", MsgEmptyUpdateBody)
	}
	c := newChecker()
	if args.Name != nil {
		c.tag("Name", *args.Name, nameTag, MsgName)
	}
	if args.Price != nil {
		c.cond("Price", Price(*args.Price), MsgPrice)
	}
	return c.err()
}
