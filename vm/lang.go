package vm

import (
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/chazu/jbridge/jni"
)

// ---------------------------------------------------------------------------
// java/lang/String
// ---------------------------------------------------------------------------

// Strings hold Go text; lengths and indexes are in UTF-16 code units as in
// Java.

func utf16Units(s string) []uint16 { return utf16.Encode([]rune(s)) }

func javaHash(s string) int32 {
	var h int32
	for _, u := range utf16Units(s) {
		h = 31*h + int32(u)
	}
	return h
}

var stringClassDef = ClassDef{
	Name: "java/lang/String",
	Methods: []MethodDef{
		instanceMethod(jni.ConstructorName, "()V", noop),
		instanceMethod(jni.ConstructorName, "(Ljava/lang/String;)V", func(c *Call) (Value, error) {
			s, ok := c.Text(0)
			if !ok {
				return Void, Throw("java/lang/NullPointerException", "")
			}
			c.This.text = s
			return Void, nil
		}),
		instanceMethod("length", "()I", func(c *Call) (Value, error) {
			return Int(int32(len(utf16Units(c.This.text)))), nil
		}),
		instanceMethod("isEmpty", "()Z", func(c *Call) (Value, error) {
			return Boolean(c.This.text == ""), nil
		}),
		instanceMethod("charAt", "(I)C", func(c *Call) (Value, error) {
			units := utf16Units(c.This.text)
			i := c.Int(0)
			if i < 0 || int(i) >= len(units) {
				return Void, Throwf("java/lang/StringIndexOutOfBoundsException",
					"Index %d out of bounds for length %d", i, len(units))
			}
			return Char(units[i]), nil
		}),
		instanceMethod("concat", "(Ljava/lang/String;)Ljava/lang/String;", func(c *Call) (Value, error) {
			s, ok := c.Text(0)
			if !ok {
				return Void, Throw("java/lang/NullPointerException", "")
			}
			return text(c, c.This.text+s)
		}),
		instanceMethod("toUpperCase", "()Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, strings.ToUpper(c.This.text))
		}),
		instanceMethod("toLowerCase", "()Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, strings.ToLower(c.This.text))
		}),
		instanceMethod("equals", "(Ljava/lang/Object;)Z", func(c *Call) (Value, error) {
			other := c.Ref(0)
			return Boolean(other != nil && other.Class == c.This.Class && other.text == c.This.text), nil
		}),
		instanceMethod("hashCode", "()I", func(c *Call) (Value, error) {
			return Int(javaHash(c.This.text)), nil
		}),
		instanceMethod("toString", "()Ljava/lang/String;", func(c *Call) (Value, error) {
			return Ref(c.This), nil
		}),
		staticMethod("valueOf", "(I)Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, strconv.FormatInt(int64(c.Int(0)), 10))
		}),
		staticMethod("valueOf", "(J)Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, strconv.FormatInt(c.Long(0), 10))
		}),
		staticMethod("valueOf", "(Z)Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, strconv.FormatBool(c.Boolean(0)))
		}),
		staticMethod("valueOf", "(C)Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, string(utf16.Decode([]uint16{c.Char(0)})))
		}),
		staticMethod("valueOf", "(F)Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, FormatDouble(float64(c.Float(0)), 32))
		}),
		staticMethod("valueOf", "(D)Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, FormatDouble(c.Double(0), 64))
		}),
		staticMethod("valueOf", "(Ljava/lang/Object;)Ljava/lang/String;", func(c *Call) (Value, error) {
			return text(c, c.VM.ToString(c.Ref(0)))
		}),
	},
}

// FormatDouble renders a float the way Double.toString and Float.toString
// do: plain notation with at least one fractional digit for magnitudes in
// [1e-3, 1e7), computerized scientific notation otherwise.
func FormatDouble(d float64, bitSize int) string {
	switch {
	case math.IsNaN(d):
		return "NaN"
	case math.IsInf(d, 1):
		return "Infinity"
	case math.IsInf(d, -1):
		return "-Infinity"
	case d == 0:
		if math.Signbit(d) {
			return "-0.0"
		}
		return "0.0"
	}
	if abs := math.Abs(d); abs >= 1e-3 && abs < 1e7 {
		s := strconv.FormatFloat(d, 'f', -1, bitSize)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(d, 'E', -1, bitSize)
	mant, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	n, _ := strconv.Atoi(exp)
	return mant + "E" + strconv.Itoa(n)
}

// ---------------------------------------------------------------------------
// Wrappers, Math, StringBuilder, System
// ---------------------------------------------------------------------------

func numberFormat(s string, ok bool) error {
	if !ok {
		return Throw("java/lang/NumberFormatException", "Cannot parse null string: null")
	}
	return Throwf("java/lang/NumberFormatException", "For input string: \"%s\"", s)
}

func boxedValue(c *Call) Value { return c.This.Field("value") }

func initValue(c *Call) (Value, error) {
	c.This.SetField("value", c.Args[0])
	return Void, nil
}

var langClassDefs = []ClassDef{
	{Name: "java/lang/Number"},
	{
		Name:  "java/lang/Integer",
		Super: "java/lang/Number",
		Fields: []FieldDef{
			{Name: "value", Sig: "I"},
			constField("MAX_VALUE", "I", Int(math.MaxInt32)),
			constField("MIN_VALUE", "I", Int(math.MinInt32)),
		},
		Methods: []MethodDef{
			instanceMethod(jni.ConstructorName, "(I)V", initValue),
			instanceMethod("intValue", "()I", func(c *Call) (Value, error) {
				return boxedValue(c), nil
			}),
			instanceMethod("byteValue", "()B", func(c *Call) (Value, error) {
				return Byte(int8(boxedValue(c).Prim.Int())), nil
			}),
			instanceMethod("shortValue", "()S", func(c *Call) (Value, error) {
				return Short(int16(boxedValue(c).Prim.Int())), nil
			}),
			instanceMethod("longValue", "()J", func(c *Call) (Value, error) {
				return Long(int64(boxedValue(c).Prim.Int())), nil
			}),
			instanceMethod("floatValue", "()F", func(c *Call) (Value, error) {
				return Float(float32(boxedValue(c).Prim.Int())), nil
			}),
			instanceMethod("doubleValue", "()D", func(c *Call) (Value, error) {
				return Double(float64(boxedValue(c).Prim.Int())), nil
			}),
			instanceMethod("hashCode", "()I", func(c *Call) (Value, error) {
				return boxedValue(c), nil
			}),
			instanceMethod("equals", "(Ljava/lang/Object;)Z", func(c *Call) (Value, error) {
				other := c.Ref(0)
				return Boolean(other != nil && other.Class == c.This.Class &&
					other.Field("value") == boxedValue(c)), nil
			}),
			instanceMethod("toString", "()Ljava/lang/String;", func(c *Call) (Value, error) {
				return text(c, strconv.FormatInt(int64(boxedValue(c).Prim.Int()), 10))
			}),
			staticMethod("valueOf", "(I)Ljava/lang/Integer;", func(c *Call) (Value, error) {
				return Ref(c.VM.Box("java/lang/Integer", c.Args[0])), nil
			}),
			staticMethod("parseInt", "(Ljava/lang/String;)I", func(c *Call) (Value, error) {
				s, ok := c.Text(0)
				n, err := strconv.ParseInt(s, 10, 32)
				if !ok || err != nil {
					return Void, numberFormat(s, ok)
				}
				return Int(int32(n)), nil
			}),
			staticMethod("toString", "(I)Ljava/lang/String;", func(c *Call) (Value, error) {
				return text(c, strconv.FormatInt(int64(c.Int(0)), 10))
			}),
			staticMethod("toHexString", "(I)Ljava/lang/String;", func(c *Call) (Value, error) {
				return text(c, strconv.FormatUint(uint64(uint32(c.Int(0))), 16))
			}),
			staticMethod("sum", "(II)I", func(c *Call) (Value, error) {
				return Int(c.Int(0) + c.Int(1)), nil
			}),
		},
	},
	{
		Name:  "java/lang/Long",
		Super: "java/lang/Number",
		Fields: []FieldDef{
			{Name: "value", Sig: "J"},
			constField("MAX_VALUE", "J", Long(math.MaxInt64)),
			constField("MIN_VALUE", "J", Long(math.MinInt64)),
		},
		Methods: []MethodDef{
			instanceMethod(jni.ConstructorName, "(J)V", initValue),
			instanceMethod("longValue", "()J", func(c *Call) (Value, error) {
				return boxedValue(c), nil
			}),
			instanceMethod("intValue", "()I", func(c *Call) (Value, error) {
				return Int(int32(boxedValue(c).Prim.Long())), nil
			}),
			instanceMethod("toString", "()Ljava/lang/String;", func(c *Call) (Value, error) {
				return text(c, strconv.FormatInt(int64(boxedValue(c).Prim.Long()), 10))
			}),
			staticMethod("valueOf", "(J)Ljava/lang/Long;", func(c *Call) (Value, error) {
				return Ref(c.VM.Box("java/lang/Long", c.Args[0])), nil
			}),
			staticMethod("parseLong", "(Ljava/lang/String;)J", func(c *Call) (Value, error) {
				s, ok := c.Text(0)
				n, err := strconv.ParseInt(s, 10, 64)
				if !ok || err != nil {
					return Void, numberFormat(s, ok)
				}
				return Long(n), nil
			}),
			staticMethod("sum", "(JJ)J", func(c *Call) (Value, error) {
				return Long(c.Long(0) + c.Long(1)), nil
			}),
		},
	},
	{
		Name: "java/lang/Boolean",
		Fields: []FieldDef{
			{Name: "value", Sig: "Z"},
			constField("TRUE", "Ljava/lang/Boolean;", Null),
			constField("FALSE", "Ljava/lang/Boolean;", Null),
		},
		Methods: []MethodDef{
			instanceMethod(jni.ConstructorName, "(Z)V", initValue),
			instanceMethod("booleanValue", "()Z", func(c *Call) (Value, error) {
				return boxedValue(c), nil
			}),
			instanceMethod("toString", "()Ljava/lang/String;", func(c *Call) (Value, error) {
				return text(c, strconv.FormatBool(bool(boxedValue(c).Prim.Boolean())))
			}),
			staticMethod("valueOf", "(Z)Ljava/lang/Boolean;", func(c *Call) (Value, error) {
				if c.Boolean(0) {
					return c.VM.StaticField("java/lang/Boolean", "TRUE"), nil
				}
				return c.VM.StaticField("java/lang/Boolean", "FALSE"), nil
			}),
			staticMethod("parseBoolean", "(Ljava/lang/String;)Z", func(c *Call) (Value, error) {
				s, _ := c.Text(0)
				return Boolean(strings.EqualFold(s, "true")), nil
			}),
		},
	},
	{
		Name:  "java/lang/Byte",
		Super: "java/lang/Number",
		Fields: []FieldDef{
			constField("MAX_VALUE", "B", Byte(math.MaxInt8)),
			constField("MIN_VALUE", "B", Byte(math.MinInt8)),
		},
		Methods: []MethodDef{
			staticMethod("toUnsignedInt", "(B)I", func(c *Call) (Value, error) {
				return Int(int32(uint8(c.Byte(0)))), nil
			}),
		},
	},
	{
		Name:  "java/lang/Short",
		Super: "java/lang/Number",
		Fields: []FieldDef{
			constField("MAX_VALUE", "S", Short(math.MaxInt16)),
			constField("MIN_VALUE", "S", Short(math.MinInt16)),
		},
		Methods: []MethodDef{
			staticMethod("reverseBytes", "(S)S", func(c *Call) (Value, error) {
				u := uint16(c.Short(0))
				return Short(int16(u<<8 | u>>8)), nil
			}),
		},
	},
	{
		Name: "java/lang/Character",
		Fields: []FieldDef{
			constField("MAX_VALUE", "C", Char(math.MaxUint16)),
			constField("MIN_VALUE", "C", Char(0)),
		},
		Methods: []MethodDef{
			staticMethod("isDigit", "(C)Z", func(c *Call) (Value, error) {
				return Boolean(unicode.IsDigit(rune(c.Char(0)))), nil
			}),
			staticMethod("toUpperCase", "(C)C", func(c *Call) (Value, error) {
				r := unicode.ToUpper(rune(c.Char(0)))
				if r > math.MaxUint16 {
					return c.Args[0], nil
				}
				return Char(uint16(r)), nil
			}),
		},
	},
	{
		Name:  "java/lang/Float",
		Super: "java/lang/Number",
		Fields: []FieldDef{
			constField("MAX_VALUE", "F", Float(math.MaxFloat32)),
		},
		Methods: []MethodDef{
			staticMethod("isNaN", "(F)Z", func(c *Call) (Value, error) {
				f := c.Float(0)
				return Boolean(f != f), nil
			}),
			staticMethod("sum", "(FF)F", func(c *Call) (Value, error) {
				return Float(c.Float(0) + c.Float(1)), nil
			}),
			staticMethod("toString", "(F)Ljava/lang/String;", func(c *Call) (Value, error) {
				return text(c, FormatDouble(float64(c.Float(0)), 32))
			}),
		},
	},
	{
		Name:  "java/lang/Double",
		Super: "java/lang/Number",
		Fields: []FieldDef{
			constField("MAX_VALUE", "D", Double(math.MaxFloat64)),
			constField("NaN", "D", Double(math.NaN())),
		},
		Methods: []MethodDef{
			staticMethod("isNaN", "(D)Z", func(c *Call) (Value, error) {
				return Boolean(math.IsNaN(c.Double(0))), nil
			}),
			staticMethod("sum", "(DD)D", func(c *Call) (Value, error) {
				return Double(c.Double(0) + c.Double(1)), nil
			}),
			staticMethod("toString", "(D)Ljava/lang/String;", func(c *Call) (Value, error) {
				return text(c, FormatDouble(c.Double(0), 64))
			}),
			staticMethod("parseDouble", "(Ljava/lang/String;)D", func(c *Call) (Value, error) {
				s, ok := c.Text(0)
				if !ok {
					return Void, Throw("java/lang/NullPointerException", "")
				}
				d, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
				if err != nil {
					return Void, numberFormat(s, true)
				}
				return Double(d), nil
			}),
		},
	},
	{
		Name: "java/lang/Math",
		Fields: []FieldDef{
			constField("PI", "D", Double(math.Pi)),
			constField("E", "D", Double(math.E)),
		},
		Methods: []MethodDef{
			staticMethod("abs", "(I)I", func(c *Call) (Value, error) {
				if x := c.Int(0); x < 0 {
					return Int(-x), nil
				}
				return c.Args[0], nil
			}),
			staticMethod("abs", "(D)D", func(c *Call) (Value, error) {
				return Double(math.Abs(c.Double(0))), nil
			}),
			staticMethod("max", "(II)I", func(c *Call) (Value, error) {
				return Int(max(c.Int(0), c.Int(1))), nil
			}),
			staticMethod("max", "(JJ)J", func(c *Call) (Value, error) {
				return Long(max(c.Long(0), c.Long(1))), nil
			}),
			staticMethod("sqrt", "(D)D", func(c *Call) (Value, error) {
				return Double(math.Sqrt(c.Double(0))), nil
			}),
			staticMethod("floorDiv", "(II)I", func(c *Call) (Value, error) {
				x, y := c.Int(0), c.Int(1)
				if y == 0 {
					return Void, Throw("java/lang/ArithmeticException", "/ by zero")
				}
				q := x / y
				if x%y != 0 && (x < 0) != (y < 0) {
					q--
				}
				return Int(q), nil
			}),
			staticMethod("addExact", "(II)I", func(c *Call) (Value, error) {
				sum := int64(c.Int(0)) + int64(c.Int(1))
				if sum > math.MaxInt32 || sum < math.MinInt32 {
					return Void, Throw("java/lang/ArithmeticException", "integer overflow")
				}
				return Int(int32(sum)), nil
			}),
			staticMethod("multiplyExact", "(JJ)J", func(c *Call) (Value, error) {
				x, y := c.Long(0), c.Long(1)
				p := x * y
				if x != 0 && (p/x != y || (x == -1 && y == math.MinInt64)) {
					return Void, Throw("java/lang/ArithmeticException", "long overflow")
				}
				return Long(p), nil
			}),
		},
	},
	{
		Name: "java/lang/StringBuilder",
		Methods: []MethodDef{
			instanceMethod(jni.ConstructorName, "()V", noop),
			instanceMethod(jni.ConstructorName, "(Ljava/lang/String;)V", func(c *Call) (Value, error) {
				s, ok := c.Text(0)
				if !ok {
					return Void, Throw("java/lang/NullPointerException", "")
				}
				c.This.text = s
				return Void, nil
			}),
			instanceMethod("append", "(Ljava/lang/String;)Ljava/lang/StringBuilder;", func(c *Call) (Value, error) {
				s, ok := c.Text(0)
				if !ok {
					s = "null"
				}
				c.This.text += s
				return Ref(c.This), nil
			}),
			instanceMethod("append", "(I)Ljava/lang/StringBuilder;", func(c *Call) (Value, error) {
				c.This.text += strconv.FormatInt(int64(c.Int(0)), 10)
				return Ref(c.This), nil
			}),
			instanceMethod("append", "(C)Ljava/lang/StringBuilder;", func(c *Call) (Value, error) {
				c.This.text += string(utf16.Decode([]uint16{c.Char(0)}))
				return Ref(c.This), nil
			}),
			instanceMethod("append", "(Z)Ljava/lang/StringBuilder;", func(c *Call) (Value, error) {
				c.This.text += strconv.FormatBool(c.Boolean(0))
				return Ref(c.This), nil
			}),
			instanceMethod("length", "()I", func(c *Call) (Value, error) {
				return Int(int32(len(utf16Units(c.This.text)))), nil
			}),
			instanceMethod("setLength", "(I)V", func(c *Call) (Value, error) {
				n := c.Int(0)
				if n < 0 {
					return Void, Throwf("java/lang/StringIndexOutOfBoundsException", "length %d", n)
				}
				units := utf16Units(c.This.text)
				for int(n) > len(units) {
					units = append(units, 0)
				}
				c.This.text = string(utf16.Decode(units[:n]))
				return Void, nil
			}),
			instanceMethod("reverse", "()Ljava/lang/StringBuilder;", func(c *Call) (Value, error) {
				r := []rune(c.This.text)
				for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
					r[i], r[j] = r[j], r[i]
				}
				c.This.text = string(r)
				return Ref(c.This), nil
			}),
			instanceMethod("toString", "()Ljava/lang/String;", func(c *Call) (Value, error) {
				return text(c, c.This.text)
			}),
		},
	},
	{
		Name: "java/lang/System",
		Methods: []MethodDef{
			staticMethod("gc", "()V", noop),
			staticMethod("identityHashCode", "(Ljava/lang/Object;)I", func(c *Call) (Value, error) {
				if o := c.Ref(0); o != nil {
					return Int(o.hash), nil
				}
				return Int(0), nil
			}),
			staticMethod("lineSeparator", "()Ljava/lang/String;", func(c *Call) (Value, error) {
				return text(c, "\n")
			}),
		},
	},
}
