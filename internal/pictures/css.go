package pictures

const styleID = "responsive-image-styles"

// ImageCSS is the style block for picture containers and their loading
// states.
func ImageCSS() string {
	return `<style id="` + styleID + `">
    .responsive-image {
        display: block;
        width: 100%;
        position: relative;
    }

    .responsive-image img {
        width: 100%;
        height: 100%;
        object-fit: cover;
        border-radius: inherit;
        background: #f8f8f8;
        contain: layout;
        will-change: opacity;
    }

    .responsive-image[data-aspect-ratio="3/4"],
    .responsive-image[data-aspect-ratio="3/4"] img {
        aspect-ratio: 3/4;
    }

    .responsive-image[data-aspect-ratio="4/3"],
    .responsive-image[data-aspect-ratio="4/3"] img {
        aspect-ratio: 4/3;
    }

    .responsive-image[data-aspect-ratio="1/1"],
    .responsive-image[data-aspect-ratio="1/1"] img {
        aspect-ratio: 1;
    }

    .gallery .responsive-image {
        border-radius: 12px;
        overflow: hidden;
    }

    .testimonial-image {
        border-radius: 8px;
        margin-top: 12px;
    }

    .influencer-image {
        border-radius: 50%;
        overflow: hidden;
        border: 2px solid #E8B4B8;
    }

    .order-bump-image {
        border-radius: 8px;
        margin-bottom: 10px;
    }

    @media print {
        .responsive-image img {
            max-width: 300px !important;
            height: auto !important;
        }
    }
</style>
`
}
