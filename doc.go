// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package razor2liquid converts Razor templates, HTML with embedded C#, to
// Liquid templates.
//
// A Razor template as:
//
//	@model Shop.Models.Order
//	@{ Layout = "MailLayout.cshtml"; }
//	<h1>@Translate("Order.Title")</h1>
//	@foreach (var item in Model.Items) {
//	  <p>@item.Name: @Raw(GetFormattedPrice(item.Price, Model.Currency))</p>
//	}
//
// is converted to the Liquid template:
//
//	{% layout 'MailLayout' %}
//	<h1>{{ "Order.Title" | translate }}</h1>
//	{% for item in Model.Items %}
//	  <p>{{ item.Name }}: {{ item.Price | format_price: Model.Currency | raw }}</p>
//	{% endfor %}
//
// The conversion is best effort. A construct that has no Liquid equivalent
// is replaced by a comment with its source, so it can be converted by hand:
//
//	{% comment %}
//	---Expression: InvocationExpression ---- From: TransformInvocation
//	Html.ActionLink("Home", "Index")
//	{% endcomment %}
//
// Function Convert converts a template source:
//
//	res, err := razor2liquid.Convert(src, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range res.Errors {
//	    log.Printf("%s", e)
//	}
//	fmt.Print(res.Liquid)
//
// Function ConvertFS converts all the templates of a directory and function
// Helpers extracts the helpers of a template, that can be converted as
// partial templates with ConvertHelpers.
//
// The names of the functions with a special meaning, as Translate and
// GetFormattedPrice, are in a symbol table that can be changed with the
// Symbols option or read from a configuration file with LoadConfig.
package razor2liquid
