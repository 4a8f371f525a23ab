package value

import "testing"

func TestTruthy(t *testing.T) {
	obj := NewObject()
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Nil, false},
		{"false", False, false},
		{"true", True, true},
		{"empty string", String(""), false},
		{"non-empty string", String("x"), true},
		{"empty array", Array{}, false},
		{"non-empty array", Array{True}, true},
		{"empty object", obj, false},
		{"zero number", Number(0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.v); got != tt.want {
				t.Errorf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestEqual_Structural(t *testing.T) {
	a := NewObject()
	a.Set("x", Number(1))
	a.Set("y", Array{String("a"), String("b")})

	b := NewObject()
	b.Set("y", Array{String("a"), String("b")})
	b.Set("x", Number(1))

	if !Equal(a, b) {
		t.Errorf("expected structurally equal objects to compare equal regardless of key order")
	}

	c := NewObject()
	c.Set("x", Number(1))
	c.Set("y", Array{String("a"), String("c")})
	if Equal(a, c) {
		t.Errorf("expected differing nested arrays to compare unequal")
	}
}

func TestObject_InsertionOrderPreserved(t *testing.T) {
	o := NewObject()
	o.Set("z", Number(1))
	o.Set("a", Number(2))
	o.Set("m", Number(3))
	got := o.Keys()
	want := []string{"z", "a", "m"}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFromJSON_PreservesKeyOrder(t *testing.T) {
	v, err := FromJSON([]byte(`{"z": 1, "a": 2, "m": 3}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	obj, ok := v.(*Object)
	if !ok {
		t.Fatalf("got %T, want *Object", v)
	}
	want := []string{"z", "a", "m"}
	got := obj.Keys()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFromJSON_Array(t *testing.T) {
	v, err := FromJSON([]byte(`[1, "two", true, null]`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	arr, ok := v.(Array)
	if !ok {
		t.Fatalf("got %T, want Array", v)
	}
	if len(arr) != 4 {
		t.Fatalf("len = %d, want 4", len(arr))
	}
	if arr[0].(Number) != 1 {
		t.Errorf("arr[0] = %v", arr[0])
	}
	if arr[1].(String) != "two" {
		t.Errorf("arr[1] = %v", arr[1])
	}
	if arr[2] != True {
		t.Errorf("arr[2] = %v", arr[2])
	}
	if _, ok := arr[3].(Null); !ok {
		t.Errorf("arr[3] = %v, want Null", arr[3])
	}
}

func TestToAny_RoundTrip(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Number(1))
	obj.Set("b", Array{String("x")})
	got := ToAny(obj).(map[string]any)
	if got["a"] != float64(1) {
		t.Errorf("a = %v", got["a"])
	}
	arr := got["b"].([]any)
	if arr[0] != "x" {
		t.Errorf("b[0] = %v", arr[0])
	}
}

func TestKind_TypeNames(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Nil, "null"},
		{True, "boolean"},
		{Number(1), "number"},
		{String("s"), "string"},
		{Array{}, "array"},
		{NewObject(), "object"},
	}
	for _, tt := range tests {
		if got := tt.v.Kind().String(); got != tt.want {
			t.Errorf("Kind() = %s, want %s", got, tt.want)
		}
	}
}
