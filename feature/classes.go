package feature

import "fmt"

/*
Class describes one of the values a label can take: the integer used by trees,
the name it has on input data and the name to show it with.
*/
type Class struct {
	Label   int
	Name    string
	Display string
}

/*
Classes is the ordered set of classes a tree can predict
*/
type Classes []Class

/*
NewClasses takes a slice of class names and returns Classes labelling them with
their index on the slice and displaying them with their own name.
*/
func NewClasses(names ...string) Classes {
	cs := make(Classes, 0, len(names))
	for i, n := range names {
		cs = append(cs, Class{Label: i, Name: n, Display: n})
	}
	return cs
}

/*
LabelFor takes the name a class has on input data and returns its label and
true, or 0 and false if no class has that name.
*/
func (cs Classes) LabelFor(name string) (int, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c.Label, true
		}
	}
	return 0, false
}

/*
Name takes a label and returns the name of its class on input data. Labels
without class are returned in decimal form.
*/
func (cs Classes) Name(label int) string {
	for _, c := range cs {
		if c.Label == label {
			return c.Name
		}
	}
	return fmt.Sprintf("%d", label)
}

/*
Display takes a label and returns the name to show its class with, falling
back to the class name when it has no display name.
*/
func (cs Classes) Display(label int) string {
	for _, c := range cs {
		if c.Label == label {
			if c.Display != "" {
				return c.Display
			}
			return c.Name
		}
	}
	return fmt.Sprintf("%d", label)
}
